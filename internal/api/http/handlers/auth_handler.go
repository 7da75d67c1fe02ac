package handlers

import (
	"net/http"

	"github.com/google/uuid"

	httpapi "github.com/spec-kit/movie-service/internal/api/http"
	"github.com/spec-kit/movie-service/internal/api/dto"
	"github.com/spec-kit/movie-service/internal/service"
)

// AuthHandler exposes signup, login, logout, and the Google OAuth flows.
type AuthHandler struct {
	auth   *service.AuthService
	google *service.GoogleAuthService
}

// NewAuthHandler constructs the handler. google may be nil when OAuth is not
// configured; the router skips those routes.
func NewAuthHandler(auth *service.AuthService, google *service.GoogleAuthService) *AuthHandler {
	return &AuthHandler{auth: auth, google: google}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(req *httpapi.Request) (*httpapi.Result, error) {
	body := req.Body()

	userID, err := h.auth.SignUp(req.Context(),
		body.String("username"),
		body.String("email"),
		body.String("name"),
		body.String("password"),
	)
	if err != nil {
		return nil, err
	}
	return httpapi.Created(dto.SignupOutput{UserID: userID}), nil
}

// Login handles POST /auth/login. Success attaches a signed session cookie.
func (h *AuthHandler) Login(req *httpapi.Request) (*httpapi.Result, error) {
	body := req.Body()

	userID, token, expiresAt, err := h.auth.Login(req.Context(), body.String("username"), body.String("password"))
	if err != nil {
		return nil, err
	}

	req.SetSessionCookie(token, expiresAt)
	return httpapi.OK(dto.SignupOutput{UserID: userID}), nil
}

// Logout handles POST /auth/logout: revokes the session token and clears the
// cookie.
func (h *AuthHandler) Logout(req *httpapi.Request) (*httpapi.Result, error) {
	if err := h.auth.Logout(req.Context(), req.SessionToken()); err != nil {
		return nil, err
	}
	req.ClearSessionCookie()
	return httpapi.NoContent(), nil
}

// GoogleSignup handles GET /auth/signup/google.
func (h *AuthHandler) GoogleSignup(req *httpapi.Request) (*httpapi.Result, error) {
	return httpapi.Redirect(h.google.SignupURL(uuid.NewString()), http.StatusFound), nil
}

// GoogleSignupRedirect handles GET /auth/signup/google/redirect.
func (h *AuthHandler) GoogleSignupRedirect(req *httpapi.Request) (*httpapi.Result, error) {
	userID, err := h.google.Signup(req.Context(), req.Query().String("code"))
	if err != nil {
		return nil, err
	}
	return h.startSession(req, userID)
}

// GoogleLogin handles GET /auth/login/google.
func (h *AuthHandler) GoogleLogin(req *httpapi.Request) (*httpapi.Result, error) {
	return httpapi.Redirect(h.google.LoginURL(uuid.NewString()), http.StatusFound), nil
}

// GoogleLoginRedirect handles GET /auth/login/google/redirect.
func (h *AuthHandler) GoogleLoginRedirect(req *httpapi.Request) (*httpapi.Result, error) {
	userID, err := h.google.Login(req.Context(), req.Query().String("code"))
	if err != nil {
		return nil, err
	}
	return h.startSession(req, userID)
}

func (h *AuthHandler) startSession(req *httpapi.Request, userID int64) (*httpapi.Result, error) {
	token, expiresAt, err := h.auth.IssueFor(userID)
	if err != nil {
		return nil, err
	}
	req.SetSessionCookie(token, expiresAt)
	return httpapi.OK(dto.SignupOutput{UserID: userID}), nil
}
