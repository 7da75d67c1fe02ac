package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/config"
	"github.com/spec-kit/movie-service/internal/domain"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

type memUserRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.seq++
	user.ID = m.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email && user.DeletedAt == nil {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (m *memUserRepo) UpdateName(_ context.Context, id int64, name string) error {
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	user.Name = name
	return nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *memUserRepo) SoftDelete(_ context.Context, id int64) error {
	user, ok := m.users[id]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	user.DeletedAt = &now
	return nil
}

type memRevocations struct {
	keys map[string]bool
}

func (m *memRevocations) Contains(_ context.Context, key string) (bool, error) {
	return m.keys[key], nil
}

func (m *memRevocations) InsertWithTTL(_ context.Context, key string, _ time.Duration) error {
	m.keys[key] = true
	return nil
}

func newAuthFixture() (*AuthService, *memUserRepo, *auth.TokenAuthority) {
	users := newMemUserRepo()
	tokens := auth.NewTokenAuthority("test-secret-0123456789", time.Hour, &memRevocations{keys: map[string]bool{}})
	cfg := config.AuthConfig{BcryptCost: 4}
	return NewAuthService(cfg, users, tokens), users, tokens
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestSignUp_OK(t *testing.T) {
	svc, users, _ := newAuthFixture()

	id, err := svc.SignUp(context.Background(), "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored, err := users.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.HasPassword())
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "alice", "other@example.com", "Other", "secret2")
	assert.Equal(t, apperrors.CodeConflict, domainCode(t, err))
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "bob", "alice@example.com", "Bob", "secret2")
	assert.Equal(t, apperrors.CodeConflict, domainCode(t, err))
}

func TestLogin_OK(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)

	userID, token, expiresAt, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, userID)
	assert.True(t, expiresAt.After(time.Now()))

	verified, err := tokens.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, verified)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, _, err := svc.Login(context.Background(), "nobody", "secret1")
	assert.Equal(t, apperrors.CodeNotFound, domainCode(t, err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice", "wrong")
	assert.Equal(t, apperrors.CodeUnauthorized, domainCode(t, err))
}

func TestLogin_PasswordlessAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{
		Username: "google-user",
		Email:    "g@example.com",
		Name:     "G",
	}))

	_, _, _, err := svc.Login(ctx, "google-user", "anything")
	assert.Equal(t, apperrors.CodeUnauthorized, domainCode(t, err))
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)

	_, token, _, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = tokens.Verify(ctx, token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}
