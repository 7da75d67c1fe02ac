package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/config"
	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// AuthService coordinates signup, login, and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenAuthority
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, tokens *auth.TokenAuthority) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: cfg.BcryptCost,
	}
}

// SignUp creates a new account. Duplicate usernames and emails are conflicts.
func (s *AuthService) SignUp(ctx context.Context, username, email, name, password string) (int64, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.NewConflict("username already registered")
	}

	exists, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.NewConflict("email already registered")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login authenticates by username and password and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (int64, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", time.Time{}, apperrors.NewNotFound("user")
		}
		return 0, "", time.Time{}, err
	}
	if !user.HasPassword() {
		return 0, "", time.Time{}, apperrors.NewUnauthorized("password login unavailable for this account")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return 0, "", time.Time{}, apperrors.NewUnauthorized("invalid password")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return 0, "", time.Time{}, err
	}
	return user.ID, token, expiresAt, nil
}

// IssueFor issues a token for an already-verified subject, used by the OAuth
// callbacks after the provider vouched for the account.
func (s *AuthService) IssueFor(userID int64) (string, time.Time, error) {
	return s.tokens.Issue(userID)
}

// Logout revokes the session token. The revocation entry expires with the
// token itself.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
