package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/domain"
)

func newUserRepo(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewUserRepository(mock), mock
}

func TestUserRepo_Create_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users \(username, email, name, password_hash, avatar_url\)`).
		WithArgs("alice", "alice@example.com", "Alice", "hash", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	user := &domain.User{Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, now, user.CreatedAt)
}

func userRows(id int64) *pgxmock.Rows {
	now := time.Now().UTC()
	return pgxmock.NewRows([]string{
		"id", "username", "email", "name", "password_hash", "avatar_url", "created_at", "updated_at", "deleted_at",
	}).AddRow(id, "alice", "alice@example.com", "Alice", "hash", "", now, now, (*time.Time)(nil))
}

func TestUserRepo_GetByID_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id=\$1 AND deleted_at IS NULL`).
		WithArgs(int64(1)).
		WillReturnRows(userRows(1))

	user, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Nil(t, user.DeletedAt)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE id=\$1 AND deleted_at IS NULL`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepo_GetByUsername_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM users WHERE username=\$1 AND deleted_at IS NULL`).
		WithArgs("alice").
		WillReturnRows(userRows(1))

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}

func TestUserRepo_ExistsByUsername(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE username=\$1 AND deleted_at IS NULL\)`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestUserRepo_UpdateName_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET name=\$1, updated_at=NOW\(\) WHERE id=\$2 AND deleted_at IS NULL`).
		WithArgs("Bob", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateName(context.Background(), 1, "Bob"))
}

func TestUserRepo_UpdateName_GoneAccount(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET name=\$1, updated_at=NOW\(\) WHERE id=\$2 AND deleted_at IS NULL`).
		WithArgs("Bob", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateName(context.Background(), 1, "Bob")
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepo_UpdatePassword_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET password_hash=\$1, updated_at=NOW\(\) WHERE id=\$2 AND deleted_at IS NULL`).
		WithArgs("newhash", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), 1, "newhash"))
}

func TestUserRepo_SoftDelete_OK(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET deleted_at=NOW\(\), updated_at=NOW\(\) WHERE id=\$1 AND deleted_at IS NULL`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 1))
}

func TestUserRepo_SoftDelete_AlreadyGone(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET deleted_at=NOW\(\), updated_at=NOW\(\) WHERE id=\$1 AND deleted_at IS NULL`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.ErrorIs(t, repo.SoftDelete(context.Background(), 1), pgx.ErrNoRows)
}

func TestUserRepo_Create_Err(t *testing.T) {
	repo, mock := newUserRepo(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "Alice", "hash", "").
		WillReturnError(errors.New("duplicate key"))

	user := &domain.User{Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}
	require.Error(t, repo.Create(context.Background(), user))
}
