package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-service/internal/config"
)

func testJar() *CookieJar {
	return NewCookieJar(config.AuthConfig{
		CookieName:   "access_token",
		CookieSecret: strings.Repeat("s", 32),
	}, config.EnvTest)
}

func readThroughApp(t *testing.T, jar *CookieJar, cookieValue string) (string, error) {
	t.Helper()

	var value string
	var readErr error

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		value, readErr = jar.Read(c)
		return c.SendStatus(200)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if cookieValue != "" {
		req.AddCookie(&nethttp.Cookie{Name: "access_token", Value: cookieValue})
	}
	_, err := app.Test(req)
	require.NoError(t, err)
	return value, readErr
}

func TestCookieJar_RoundTrip(t *testing.T) {
	jar := testJar()

	signed := jar.sign("header.payload.signature")
	value, err := readThroughApp(t, jar, signed)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.signature", value)
}

func TestCookieJar_AbsentCookie(t *testing.T) {
	jar := testJar()

	value, err := readThroughApp(t, jar, "")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCookieJar_TamperedValue(t *testing.T) {
	jar := testJar()

	signed := jar.sign("token-value")
	tampered := "x" + signed

	_, err := readThroughApp(t, jar, tampered)
	assert.ErrorIs(t, err, ErrCookieTampered)
}

func TestCookieJar_ForgedSignature(t *testing.T) {
	jar := testJar()

	_, err := readThroughApp(t, jar, "token-value.Zm9yZ2Vk")
	assert.ErrorIs(t, err, ErrCookieTampered)
}

func TestCookieJar_NoSeparator(t *testing.T) {
	jar := testJar()

	_, err := readThroughApp(t, jar, "garbage-without-dot")
	assert.ErrorIs(t, err, ErrCookieTampered)
}

func TestCookieJar_SetWritesSignedCookie(t *testing.T) {
	jar := testJar()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		jar.Set(c, "tok", time.Now().Add(time.Hour))
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, jar.sign("tok"), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
