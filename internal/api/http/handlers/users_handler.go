package handlers

import (
	"errors"

	"github.com/jackc/pgx/v5"

	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/service"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// UsersHandler exposes account reads and self-service updates.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users *service.UserService, auth *service.AuthService) *UsersHandler {
	return &UsersHandler{users: users, auth: auth}
}

// Me handles GET /users/me. A session pointing at a withdrawn account clears
// the cookie before reporting not found.
func (h *UsersHandler) Me(req *httpapi.Request) (*httpapi.Result, error) {
	user, err := h.users.UserByID(req.Context(), req.UserID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			req.ClearSessionCookie()
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return httpapi.OK(dto.NewUserOutput(user)), nil
}

// User handles GET /users/:userId.
func (h *UsersHandler) User(req *httpapi.Request) (*httpapi.Result, error) {
	user, err := h.users.UserByID(req.Context(), req.Params().Int("userId"))
	if err != nil {
		return nil, err
	}
	return httpapi.OK(dto.NewUserOutput(user)), nil
}

// UpdateMyName handles PATCH /users/me/name.
func (h *UsersHandler) UpdateMyName(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.users.UpdateName(req.Context(), req.UserID(), req.Body().String("name")); err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// UpdateMyPassword handles PATCH /users/me/password.
func (h *UsersHandler) UpdateMyPassword(req *httpapi.Request) (*httpapi.Result, error) {
	body := req.Body()

	err := h.users.UpdatePassword(req.Context(), req.UserID(), body.String("oldPassword"), body.String("newPassword"))
	if err != nil {
		return nil, err
	}
	return httpapi.NoContent(), nil
}

// Withdraw handles DELETE /users/me: soft-deletes the account, revokes the
// session token, and clears the cookie.
func (h *UsersHandler) Withdraw(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.users.Withdraw(req.Context(), req.UserID(), req.Body().String("password")); err != nil {
		return nil, err
	}
	if err := h.auth.Logout(req.Context(), req.SessionToken()); err != nil {
		return nil, err
	}
	req.ClearSessionCookie()
	return httpapi.NoContent(), nil
}
