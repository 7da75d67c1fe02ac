package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/valid"
	apperrors "github.com/spec-kit/movie-service/pkg/util"
)

// AuthLevel is the per-route identity-resolution policy.
type AuthLevel int

const (
	// AuthNone skips identity resolution entirely.
	AuthNone AuthLevel = iota
	// AuthOptional resolves identity when a session cookie is present. A
	// present-but-invalid token is a hard failure, never treated as anonymous.
	AuthOptional
	// AuthMust requires a verified session token.
	AuthMust
)

// Result is the success envelope a controller returns. A zero Status defaults
// to 200 when a body is present and 204 otherwise.
type Result struct {
	Status     int
	Body       any
	RedirectTo string
}

// OK wraps a body in a 200 result.
func OK(body any) *Result {
	return &Result{Status: http.StatusOK, Body: body}
}

// Created wraps a body in a 201 result.
func Created(body any) *Result {
	return &Result{Status: http.StatusCreated, Body: body}
}

// NoContent is an empty 204 result.
func NoContent() *Result {
	return &Result{Status: http.StatusNoContent}
}

// Redirect points the client at another location.
func Redirect(url string, status int) *Result {
	return &Result{Status: status, RedirectTo: url}
}

// Controller is the seam into business logic: it receives the fully resolved
// request and returns a result envelope or a typed failure.
type Controller func(*Request) (*Result, error)

// Route declares everything the dispatcher needs for one endpoint.
type Route struct {
	Auth       AuthLevel
	Params     *valid.Schema
	Query      *valid.Schema
	Body       *valid.Schema
	Controller Controller
}

// Request carries the resolved identity and validated inputs into a
// controller, plus the primitives needed for cookie side effects. It is built
// fresh per request and never escapes the request lifecycle.
type Request struct {
	c             *fiber.Ctx
	jar           *CookieJar
	userID        int64
	authenticated bool
	sessionToken  string
	params        valid.Values
	query         valid.Values
	body          valid.Values
}

// Context returns the request-scoped context.
func (r *Request) Context() context.Context {
	return r.c.Context()
}

// UserID returns the resolved subject id. Valid only when Authenticated.
func (r *Request) UserID() int64 {
	return r.userID
}

// Authenticated reports whether an identity was attached.
func (r *Request) Authenticated() bool {
	return r.authenticated
}

// SessionToken returns the verified raw session token, for revocation.
func (r *Request) SessionToken() string {
	return r.sessionToken
}

// Params returns the validated path parameters.
func (r *Request) Params() valid.Values {
	return r.params
}

// Query returns the validated query fragment.
func (r *Request) Query() valid.Values {
	return r.query
}

// Body returns the validated body fragment.
func (r *Request) Body() valid.Values {
	return r.body
}

// SetSessionCookie writes a signed session cookie for the token.
func (r *Request) SetSessionCookie(token string, expiresAt time.Time) {
	r.jar.Set(r.c, token, expiresAt)
}

// ClearSessionCookie removes the session cookie.
func (r *Request) ClearSessionCookie() {
	r.jar.Clear(r.c)
}

// Pipeline composes auth resolution, input validation, and response
// normalization around controllers.
type Pipeline struct {
	tokens *auth.TokenAuthority
	jar    *CookieJar
	logger *zap.Logger
}

// NewPipeline builds the dispatcher.
func NewPipeline(tokens *auth.TokenAuthority, jar *CookieJar, logger *zap.Logger) *Pipeline {
	return &Pipeline{tokens: tokens, jar: jar, logger: logger}
}

// Handle turns a route declaration into a fiber handler. Stages run in fixed
// order: auth, then path params, query, and body validation; the first
// failure short-circuits before the controller runs.
func (p *Pipeline) Handle(route Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := &Request{c: c, jar: p.jar}

		if err := p.resolveAuth(c, route.Auth, req); err != nil {
			return err
		}

		if route.Params != nil {
			values, err := route.Params.Validate(stringFragment(c.AllParams()))
			if err != nil {
				return apperrors.NewInvalidParams("invalid path parameters", violationDetails(err))
			}
			req.params = values
		}
		if route.Query != nil {
			values, err := route.Query.Validate(stringFragment(c.Queries()))
			if err != nil {
				return apperrors.NewInvalidQuery("invalid query parameters", violationDetails(err))
			}
			req.query = values
		}
		if route.Body != nil {
			fragment, err := bodyFragment(c)
			if err != nil {
				return err
			}
			values, err := route.Body.Validate(fragment)
			if err != nil {
				return apperrors.NewInvalidBody("invalid request body", violationDetails(err))
			}
			req.body = values
		}

		result, err := route.Controller(req)
		if err != nil {
			return err
		}
		return writeResult(c, result)
	}
}

func (p *Pipeline) resolveAuth(c *fiber.Ctx, level AuthLevel, req *Request) error {
	if level == AuthNone {
		return nil
	}

	token, err := p.jar.Read(c)
	if err != nil {
		// Transport-level tampering fails regardless of policy.
		return apperrors.NewDomainError(apperrors.CodeInvalidToken, "invalid token", 0, nil)
	}
	if token == "" {
		if level == AuthMust {
			return apperrors.NewUnauthorized("authentication required")
		}
		return nil
	}

	userID, err := p.tokens.Verify(c.Context(), token)
	if err != nil {
		return auth.MapVerifyError(err)
	}
	req.userID = userID
	req.authenticated = true
	req.sessionToken = token
	return nil
}

func writeResult(c *fiber.Ctx, result *Result) error {
	if result == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	if result.RedirectTo != "" {
		status := result.Status
		if status == 0 {
			status = http.StatusFound
		}
		return c.Redirect(result.RedirectTo, status)
	}
	status := result.Status
	if status == 0 {
		if result.Body == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}
	if result.Body == nil {
		return c.SendStatus(status)
	}
	return c.Status(status).JSON(fiber.Map{"data": result.Body})
}

func stringFragment(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func bodyFragment(c *fiber.Ctx) (map[string]any, error) {
	raw := c.Body()
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	fragment := map[string]any{}
	if err := json.Unmarshal(raw, &fragment); err != nil {
		return nil, apperrors.NewInvalidBody("malformed request body", nil)
	}
	return fragment, nil
}

func violationDetails(err error) map[string]any {
	ve, ok := err.(*valid.Error)
	if !ok {
		return nil
	}
	details := make(map[string]any, len(ve.Violations))
	for field, msg := range ve.Violations {
		details[field] = msg
	}
	return details
}
