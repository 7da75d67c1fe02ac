package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/spec-kit/movie-service/internal/config"
	"github.com/spec-kit/movie-service/internal/domain"
	"github.com/spec-kit/movie-service/internal/repository"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleAuthService implements signup and login through Google OAuth.
// Signup and login use distinct redirect URIs, mirroring the separate
// /signup/google and /login/google routes.
type GoogleAuthService struct {
	users  repository.UserRepository
	signup *oauth2.Config
	login  *oauth2.Config
}

// NewGoogleAuthService builds the service from OAuth configuration.
func NewGoogleAuthService(cfg config.GoogleConfig, users repository.UserRepository) *GoogleAuthService {
	base := oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	signup := base
	signup.RedirectURL = cfg.SignupRedirectURL
	login := base
	login.RedirectURL = cfg.LoginRedirectURL

	return &GoogleAuthService{users: users, signup: &signup, login: &login}
}

// SignupURL returns the consent-screen URL for account creation.
func (s *GoogleAuthService) SignupURL(state string) string {
	return s.signup.AuthCodeURL(state)
}

// LoginURL returns the consent-screen URL for login.
func (s *GoogleAuthService) LoginURL(state string) string {
	return s.login.AuthCodeURL(state)
}

type googleUserinfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Signup exchanges the authorization code and creates the account, or loads
// it when the email is already registered through Google.
func (s *GoogleAuthService) Signup(ctx context.Context, code string) (int64, error) {
	info, err := s.exchange(ctx, s.signup, code)
	if err != nil {
		return 0, err
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	created := &domain.User{
		Username:  info.Email,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}
	if err := s.users.Create(ctx, created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Login exchanges the authorization code and resolves an existing account.
func (s *GoogleAuthService) Login(ctx context.Context, code string) (int64, error) {
	info, err := s.exchange(ctx, s.login, code)
	if err != nil {
		return 0, err
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFound("user")
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *GoogleAuthService) exchange(ctx context.Context, cfg *oauth2.Config, code string) (*googleUserinfo, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.NewUnauthorized("google code exchange failed")
	}

	client := cfg.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("google userinfo status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, apperrors.NewUnauthorized("google account has no email")
	}
	return &info, nil
}
