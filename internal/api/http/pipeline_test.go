package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-service/internal/auth"
	"github.com/spec-kit/movie-service/internal/valid"
)

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

type pipelineFixture struct {
	pipeline *Pipeline
	tokens   *auth.TokenAuthority
	jar      *CookieJar
}

func newPipelineFixture() *pipelineFixture {
	store := &memRevocations{keys: map[string]bool{}}
	tokens := auth.NewTokenAuthority(strings.Repeat("k", 16), time.Hour, store)
	jar := testJar()
	return &pipelineFixture{
		pipeline: NewPipeline(tokens, jar, zap.NewNop()),
		tokens:   tokens,
		jar:      jar,
	}
}

func (f *pipelineFixture) app(method, path string, route Route) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), nil))
	app.Add(method, path, f.pipeline.Handle(route))
	return app
}

func (f *pipelineFixture) sessionCookie(t *testing.T, userID int64) *nethttp.Cookie {
	t.Helper()
	token, _, err := f.tokens.Issue(userID)
	require.NoError(t, err)
	return &nethttp.Cookie{Name: "access_token", Value: f.jar.sign(token)}
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error envelope, got %v", body)
	code, _ := envelope["code"].(string)
	return code
}

func TestHandle_NoAuthRoute(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/ping", Route{
		Auth: AuthNone,
		Controller: func(r *Request) (*Result, error) {
			assert.False(t, r.Authenticated())
			return OK(fiber.Map{"pong": true}), nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["pong"])
}

func TestHandle_OptionalAuthWithoutCookie(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/feed", Route{
		Auth: AuthOptional,
		Controller: func(r *Request) (*Result, error) {
			assert.False(t, r.Authenticated())
			assert.Zero(t, r.UserID())
			return NoContent(), nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestHandle_OptionalAuthWithValidCookie(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/feed", Route{
		Auth: AuthOptional,
		Controller: func(r *Request) (*Result, error) {
			assert.True(t, r.Authenticated())
			assert.Equal(t, int64(42), r.UserID())
			return NoContent(), nil
		},
	})

	req := httptest.NewRequest("GET", "/feed", nil)
	req.AddCookie(f.sessionCookie(t, 42))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestHandle_OptionalAuthTamperedCookieFailsHard(t *testing.T) {
	f := newPipelineFixture()
	invoked := false
	app := f.app("GET", "/feed", Route{
		Auth: AuthOptional,
		Controller: func(r *Request) (*Result, error) {
			invoked = true
			return NoContent(), nil
		},
	})

	token, _, err := f.tokens.Issue(7)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/feed", nil)
	req.AddCookie(&nethttp.Cookie{Name: "access_token", Value: f.jar.sign(token) + "x"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
	assert.False(t, invoked)
}

func TestHandle_MustAuthWithoutCookie(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/me", Route{
		Auth: AuthMust,
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestHandle_MustAuthRevokedToken(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/me", Route{
		Auth: AuthMust,
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	token, _, err := f.tokens.Issue(9)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(context.Background(), token))

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&nethttp.Cookie{Name: "access_token", Value: f.jar.sign(token)})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, resp))
}

func TestHandle_MustAuthForeignSignature(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/me", Route{
		Auth: AuthMust,
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	other := auth.NewTokenAuthority("a-different-secret", time.Hour, &memRevocations{keys: map[string]bool{}})
	token, _, err := other.Issue(9)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&nethttp.Cookie{Name: "access_token", Value: f.jar.sign(token)})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestHandle_ParamsValidatedBeforeQueryAndBody(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("POST", "/movies/:movieId", Route{
		Auth:   AuthNone,
		Params: valid.Object().Field("movieId", valid.Int().Min(1)),
		Query:  valid.Object().Field("take", valid.Int().Min(1)),
		Body:   valid.Object().Field("like", valid.Bool()),
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	// Every fragment is wrong; the path parameter failure must win.
	req := httptest.NewRequest("POST", "/movies/abc?take=zero", strings.NewReader(`{"like":"maybe"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "INVALID_PARAMS", errorCode(t, resp))
}

func TestHandle_QueryValidatedBeforeBody(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("POST", "/movies/:movieId", Route{
		Auth:   AuthNone,
		Params: valid.Object().Field("movieId", valid.Int().Min(1)),
		Query:  valid.Object().Field("take", valid.Int().Min(1)),
		Body:   valid.Object().Field("like", valid.Bool()),
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	req := httptest.NewRequest("POST", "/movies/3?take=zero", strings.NewReader(`{"like":"maybe"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", errorCode(t, resp))
}

func TestHandle_BodyViolationsEnumerated(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("POST", "/signup", Route{
		Auth: AuthNone,
		Body: valid.Object().
			Field("username", valid.String().MinLen(4).MaxLen(20)).
			Field("password", valid.String().MinLen(4).MaxLen(100)),
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"username":"abc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_BODY", envelope["code"])

	details, ok := envelope["details"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "password")
}

func TestHandle_MalformedJSONBody(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("POST", "/signup", Route{
		Auth: AuthNone,
		Body: valid.Object().Field("username", valid.String().Optional()),
		Controller: func(r *Request) (*Result, error) {
			t.Error("controller must not run")
			return nil, nil
		},
	})

	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"username":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestHandle_NilResultIsNoContent(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("DELETE", "/thing", Route{
		Auth: AuthNone,
		Controller: func(r *Request) (*Result, error) {
			return nil, nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/thing", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestHandle_ZeroStatusDefaults(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/thing", Route{
		Auth: AuthNone,
		Controller: func(r *Request) (*Result, error) {
			return &Result{Body: fiber.Map{"ok": true}}, nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/thing", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandle_UnrecognizedControllerError(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/boom", Route{
		Auth: AuthNone,
		Controller: func(r *Request) (*Result, error) {
			return nil, errors.New("pool exhausted at 10.0.0.3")
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body := decodeBody(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", envelope["code"])
	assert.NotContains(t, envelope["message"], "10.0.0.3")
}

func TestHandle_RedirectResult(t *testing.T) {
	f := newPipelineFixture()
	app := f.app("GET", "/go", Route{
		Auth: AuthNone,
		Controller: func(r *Request) (*Result, error) {
			return Redirect("https://accounts.example.com/consent", 302), nil
		},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/go", nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "https://accounts.example.com/consent", resp.Header.Get("Location"))
}
