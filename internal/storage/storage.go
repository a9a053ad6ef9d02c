package storage

import (
	"context"

	"social-media-server/internal/domain/models"
)

// Storage is the persistence gateway. Implementations acquire a connection
// per call and release it before returning, on every exit path.
type Storage interface {
	SaveAccount(ctx context.Context, username, password string) (int64, error)
	AccountByUsername(ctx context.Context, username string) (*models.Account, error)
	AccountByID(ctx context.Context, id int64) (*models.Account, error)

	SaveMessage(ctx context.Context, postedBy int64, text string, postedAt int64) (int64, error)
	AllMessages(ctx context.Context) ([]*models.Message, error)
	MessageByID(ctx context.Context, id int64) (*models.Message, error)
	UpdateMessageText(ctx context.Context, id int64, text string) error
	DeleteMessage(ctx context.Context, id int64) error
	MessagesByAccountID(ctx context.Context, accountID int64) ([]*models.Message, error)

	Close()
}
