package account

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"social-media-server/internal/domain/models"
	"social-media-server/internal/storage"
)

// mockStorage implements storage.Storage for tests.
type mockStorage struct {
	byUsername map[string]*models.Account
	byID       map[int64]*models.Account
	nextID     int64
	saveErr    error
	getErr     error
}

func newMockStorage() *mockStorage {
	return &mockStorage{byUsername: map[string]*models.Account{}, byID: map[int64]*models.Account{}, nextID: 1}
}

func (m *mockStorage) SaveAccount(ctx context.Context, username, password string) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	if _, ok := m.byUsername[username]; ok {
		return 0, models.ErrUsernameTaken
	}
	id := m.nextID
	m.nextID++
	acc := &models.Account{ID: id, Username: username, Password: password}
	m.byUsername[username] = acc
	m.byID[id] = acc
	return id, nil
}

func (m *mockStorage) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	acc, ok := m.byUsername[username]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return acc, nil
}

func (m *mockStorage) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	acc, ok := m.byID[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return acc, nil
}

// Unused message-related methods
func (m *mockStorage) SaveMessage(ctx context.Context, postedBy int64, text string, postedAt int64) (int64, error) {
	return 0, errors.New("not implemented")
}
func (m *mockStorage) AllMessages(ctx context.Context) ([]*models.Message, error) {
	return nil, errors.New("not implemented")
}
func (m *mockStorage) MessageByID(ctx context.Context, id int64) (*models.Message, error) {
	return nil, errors.New("not implemented")
}
func (m *mockStorage) UpdateMessageText(ctx context.Context, id int64, text string) error {
	return errors.New("not implemented")
}
func (m *mockStorage) DeleteMessage(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}
func (m *mockStorage) MessagesByAccountID(ctx context.Context, accountID int64) ([]*models.Message, error) {
	return nil, errors.New("not implemented")
}
func (m *mockStorage) Close() {}

var _ storage.Storage = (*mockStorage)(nil)

func testLogger() *slog.Logger { return slog.New(slog.NewTextHandler(os.Stdout, nil)) }

func TestRegisterAndLogin(t *testing.T) {
	st := newMockStorage()
	svc := New(testLogger(), st, 4)

	acc, err := svc.Register(context.Background(), "bob", "pw12")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if acc.ID == 0 || acc.Username != "bob" {
		t.Fatalf("unexpected account %+v", acc)
	}

	// Duplicate register
	_, err = svc.Register(context.Background(), "bob", "pw12")
	if !errors.Is(err, models.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	logged, err := svc.Login(context.Background(), "bob", "pw12")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if logged.ID != acc.ID || logged.Username != "bob" {
		t.Fatalf("account mismatch: %+v", logged)
	}

	// Wrong password and unknown username must be indistinguishable
	_, wrongPwErr := svc.Login(context.Background(), "bob", "nope")
	_, unknownErr := svc.Login(context.Background(), "alice", "pw12")
	if !errors.Is(wrongPwErr, models.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", wrongPwErr)
	}
	if !errors.Is(unknownErr, models.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", unknownErr)
	}
}

func TestRegisterValidation(t *testing.T) {
	st := newMockStorage()
	svc := New(testLogger(), st, 4)

	if _, err := svc.Register(context.Background(), "", "pw12"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pw"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if len(st.byUsername) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestLoginStorageError(t *testing.T) {
	st := newMockStorage()
	st.getErr = errors.New("db down")
	svc := New(testLogger(), st, 4)

	_, err := svc.Login(context.Background(), "bob", "pw12")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("storage error must surface as invalid credentials, got %v", err)
	}
}

func TestAccountByID(t *testing.T) {
	st := newMockStorage()
	svc := New(testLogger(), st, 4)

	acc, err := svc.Register(context.Background(), "bob", "pw12")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}

	got, err := svc.AccountByID(context.Background(), acc.ID)
	if err != nil || got.Username != "bob" {
		t.Fatalf("lookup failed: %v %+v", err, got)
	}

	if _, err := svc.AccountByID(context.Background(), 999); !errors.Is(err, models.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
