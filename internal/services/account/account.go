package account

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

type Service struct {
	log            *slog.Logger
	storage        storage.Storage
	minPasswordLen int
}

func New(log *slog.Logger, storage storage.Storage, minPasswordLen int) *Service {
	return &Service{
		log:            log,
		storage:        storage,
		minPasswordLen: minPasswordLen,
	}
}

// Register validates and persists a new account. The username must be
// non-blank and unique, the password at least minPasswordLen characters.
func (s *Service) Register(ctx context.Context, username, password string) (*models.Account, error) {
	const op = "services.account.Register"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	if err := validate.Var(username, "required"); err != nil {
		return nil, fmt.Errorf("%s: username cannot be blank: %w", op, models.ErrValidation)
	}
	if err := validate.Var(password, fmt.Sprintf("min=%d", s.minPasswordLen)); err != nil {
		return nil, fmt.Errorf("%s: password too short: %w", op, models.ErrValidation)
	}

	id, err := s.storage.SaveAccount(ctx, username, password)
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
		}
		log.Error("failed to save account", slog.Any("err", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Account{ID: id, Username: username, Password: password}, nil
}

// Login returns the stored account when the supplied credentials match
// exactly. An unknown username and a wrong password are indistinguishable:
// both come back as ErrInvalidCredentials, storage failures included.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	const op = "services.account.Login"

	acc, err := s.storage.AccountByUsername(ctx, username)
	if err != nil {
		// do not reveal whether the account exists
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	if acc.Password != password {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	return acc, nil
}

// AccountByID is an existence check used by the message service.
func (s *Service) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "services.account.AccountByID"

	acc, err := s.storage.AccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return acc, nil
}
