package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"social-media-server/internal/domain/models"
	"social-media-server/internal/storage"
)

var validate = validator.New()

// Service validates and persists messages. Writes are fail-closed: any
// validation or storage problem propagates to the caller. Reads are fail-open
// when cfg allows it: storage errors are logged and turned into empty results,
// so a degraded database never makes reads fail visibly.
type Service struct {
	log           *slog.Logger
	storage       storage.Storage
	maxTextLen    int
	failOpenReads bool
}

func New(log *slog.Logger, storage storage.Storage, maxTextLen int, failOpenReads bool) *Service {
	return &Service{
		log:           log,
		storage:       storage,
		maxTextLen:    maxTextLen,
		failOpenReads: failOpenReads,
	}
}

func (s *Service) validateText(op, text string) error {
	if err := validate.Var(text, "required"); err != nil {
		return fmt.Errorf("%s: message text cannot be blank: %w", op, models.ErrValidation)
	}
	if err := validate.Var(text, fmt.Sprintf("max=%d", s.maxTextLen)); err != nil {
		return fmt.Errorf("%s: message text cannot exceed %d characters: %w", op, s.maxTextLen, models.ErrValidation)
	}
	return nil
}

// Create persists a new message. The posting account is resolved here, before
// anything is written: a candidate referencing an unknown account fails with
// ErrAccountNotFound and leaves no row behind.
func (s *Service) Create(ctx context.Context, candidate models.Message) (*models.Message, error) {
	const op = "services.message.Create"
	log := s.log.With(slog.String("op", op), slog.Int64("posted_by", candidate.PostedBy))

	if err := s.validateText(op, candidate.Text); err != nil {
		return nil, err
	}

	if _, err := s.storage.AccountByID(ctx, candidate.PostedBy); err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAccountNotFound)
		}
		log.Error("failed to resolve posting account", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.storage.SaveMessage(ctx, candidate.PostedBy, candidate.Text, candidate.PostedAt)
	if err != nil {
		log.Error("failed to save message", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Message{
		ID:       id,
		PostedBy: candidate.PostedBy,
		Text:     candidate.Text,
		PostedAt: candidate.PostedAt,
	}, nil
}

// All returns every message in message_id order. The result is never nil.
func (s *Service) All(ctx context.Context) ([]*models.Message, error) {
	const op = "services.message.All"

	messages, err := s.storage.AllMessages(ctx)
	if err != nil {
		return s.readFailure(op, err)
	}

	return messages, nil
}

// ByID returns (nil, nil) when the message does not exist; under the
// fail-open policy a storage error is reported the same way.
func (s *Service) ByID(ctx context.Context, id int64) (*models.Message, error) {
	const op = "services.message.ByID"

	msg, err := s.storage.MessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrMessageNotFound) {
			return nil, nil
		}
		if s.failOpenReads {
			s.log.Error("read failed, returning absent", slog.String("op", op), slog.Any("err", err))
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return msg, nil
}

// Update replaces only the message text; posted_by and time_posted_epoch are
// preserved from the existing row. The existence re-check is fail-closed.
func (s *Service) Update(ctx context.Context, id int64, text string) (*models.Message, error) {
	const op = "services.message.Update"
	log := s.log.With(slog.String("op", op), slog.Int64("message_id", id))

	if err := s.validateText(op, text); err != nil {
		return nil, err
	}

	existing, err := s.storage.MessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrMessageNotFound) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMessageNotFound)
		}
		log.Error("failed to load message", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateMessageText(ctx, id, text); err != nil {
		log.Error("failed to update message", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Message{
		ID:       id,
		PostedBy: existing.PostedBy,
		Text:     text,
		PostedAt: existing.PostedAt,
	}, nil
}

// Delete removes a message by id and returns the removed row. Deleting an id
// that does not exist is not an error; the result is simply (nil, nil).
func (s *Service) Delete(ctx context.Context, id int64) (*models.Message, error) {
	const op = "services.message.Delete"

	existing, err := s.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing == nil {
		return nil, nil
	}

	if err := s.storage.DeleteMessage(ctx, id); err != nil {
		s.log.Error("failed to delete message", slog.String("op", op), slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return existing, nil
}

// ByAccountID returns the account's messages with the same ordering and
// fail-open policy as All.
func (s *Service) ByAccountID(ctx context.Context, accountID int64) ([]*models.Message, error) {
	const op = "services.message.ByAccountID"

	messages, err := s.storage.MessagesByAccountID(ctx, accountID)
	if err != nil {
		return s.readFailure(op, err)
	}

	return messages, nil
}

func (s *Service) readFailure(op string, err error) ([]*models.Message, error) {
	if s.failOpenReads {
		s.log.Error("read failed, returning empty result", slog.String("op", op), slog.Any("err", err))
		return []*models.Message{}, nil
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}
