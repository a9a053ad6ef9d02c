package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"social-media-server/internal/config"
	"social-media-server/internal/domain/models"
)

// PostgreSQL error codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// applied one statement at a time: pgx's extended protocol does not accept
// multi-statement strings
var schema = []string{
	`CREATE TABLE IF NOT EXISTS account (
	    account_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	    username   TEXT NOT NULL UNIQUE,
	    password   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message (
	    message_id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	    posted_by         BIGINT NOT NULL REFERENCES account (account_id),
	    message_text      VARCHAR(255) NOT NULL,
	    time_posted_epoch BIGINT NOT NULL
	)`,
}

type Storage struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func New(ctx context.Context, cfg config.Postgres, log *slog.Logger) (*Storage, error) {
	const op = "storage.postgres.New"

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to postgres: %w", op, err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to ping postgres: %w", op, err)
	}

	for _, stmt := range schema {
		if _, err = pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%s: failed to apply schema: %w", op, err)
		}
	}

	log.Info("connected to PostgreSQL", slog.String("db_name", cfg.DBName))

	return &Storage{pool: pool, log: log}, nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) SaveAccount(ctx context.Context, username, password string) (int64, error) {
	const op = "storage.postgres.SaveAccount"

	query := `INSERT INTO account (username, password) VALUES (@username, @password) RETURNING account_id`
	args := pgx.NamedArgs{
		"username": username,
		"password": password,
	}

	var id int64
	err := s.pool.QueryRow(ctx, query, args).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrUsernameTaken)
		}
		s.log.Error("failed to save account", slog.Any("err", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	const op = "storage.postgres.AccountByUsername"

	query := `SELECT account_id, username, password FROM account WHERE username = @username`
	args := pgx.NamedArgs{"username": username}

	var acc models.Account
	err := s.pool.QueryRow(ctx, query, args).Scan(&acc.ID, &acc.Username, &acc.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &acc, nil
}

func (s *Storage) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "storage.postgres.AccountByID"

	query := `SELECT account_id, username, password FROM account WHERE account_id = @id`
	args := pgx.NamedArgs{"id": id}

	var acc models.Account
	err := s.pool.QueryRow(ctx, query, args).Scan(&acc.ID, &acc.Username, &acc.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &acc, nil
}

func (s *Storage) SaveMessage(ctx context.Context, postedBy int64, text string, postedAt int64) (int64, error) {
	const op = "storage.postgres.SaveMessage"

	query := `INSERT INTO message (posted_by, message_text, time_posted_epoch)
	          VALUES (@postedBy, @text, @postedAt) RETURNING message_id`
	args := pgx.NamedArgs{
		"postedBy": postedBy,
		"text":     text,
		"postedAt": postedAt,
	}

	var id int64
	err := s.pool.QueryRow(ctx, query, args).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrAccountNotFound)
		}
		s.log.Error("failed to save message", slog.Any("err", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) AllMessages(ctx context.Context) ([]*models.Message, error) {
	const op = "storage.postgres.AllMessages"

	query := `SELECT message_id, posted_by, message_text, time_posted_epoch
	          FROM message ORDER BY message_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanMessages(rows, op)
}

func (s *Storage) MessageByID(ctx context.Context, id int64) (*models.Message, error) {
	const op = "storage.postgres.MessageByID"

	query := `SELECT message_id, posted_by, message_text, time_posted_epoch
	          FROM message WHERE message_id = @id`
	args := pgx.NamedArgs{"id": id}

	var msg models.Message
	err := s.pool.QueryRow(ctx, query, args).Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMessageNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &msg, nil
}

func (s *Storage) UpdateMessageText(ctx context.Context, id int64, text string) error {
	const op = "storage.postgres.UpdateMessageText"

	query := `UPDATE message SET message_text = @text WHERE message_id = @id`
	args := pgx.NamedArgs{"id": id, "text": text}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		s.log.Error("failed to update message", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrMessageNotFound)
	}

	return nil
}

func (s *Storage) DeleteMessage(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteMessage"

	query := `DELETE FROM message WHERE message_id = @id`
	args := pgx.NamedArgs{"id": id}

	// deleting an absent row is not an error; the row count is irrelevant here
	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		s.log.Error("failed to delete message", slog.Any("err", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) MessagesByAccountID(ctx context.Context, accountID int64) ([]*models.Message, error) {
	const op = "storage.postgres.MessagesByAccountID"

	query := `SELECT message_id, posted_by, message_text, time_posted_epoch
	          FROM message WHERE posted_by = @accountID ORDER BY message_id`
	args := pgx.NamedArgs{"accountID": accountID}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanMessages(rows, op)
}

func scanMessages(rows pgx.Rows, op string) ([]*models.Message, error) {
	messages := make([]*models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return messages, nil
}
