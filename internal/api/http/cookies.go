package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-service/internal/config"
)

// ErrCookieTampered indicates a cookie whose signature does not match its
// value. Distinct from an absent cookie: tampering is a hard failure at any
// auth level.
var ErrCookieTampered = errors.New("cookie signature mismatch")

// CookieJar reads and writes the signed session cookie. Values are stored as
// "value.signature" with an HMAC-SHA256 signature over the value.
type CookieJar struct {
	name   string
	secret []byte
	secure bool
}

// NewCookieJar builds a jar from auth configuration. Cookies are marked
// Secure outside dev and test environments.
func NewCookieJar(cfg config.AuthConfig, env string) *CookieJar {
	return &CookieJar{
		name:   cfg.CookieName,
		secret: []byte(cfg.CookieSecret),
		secure: env != config.EnvDev && env != config.EnvTest,
	}
}

func (j *CookieJar) sign(value string) string {
	mac := hmac.New(sha256.New, j.secret)
	mac.Write([]byte(value))
	return value + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Read returns the verified cookie value. An absent cookie yields ("", nil);
// a signature mismatch yields ErrCookieTampered.
func (j *CookieJar) Read(c *fiber.Ctx) (string, error) {
	raw := c.Cookies(j.name)
	if raw == "" {
		return "", nil
	}

	// The signature never contains a dot, the value may.
	idx := strings.LastIndex(raw, ".")
	if idx <= 0 {
		return "", ErrCookieTampered
	}
	value, sig := raw[:idx], raw[idx+1:]

	expected := hmac.New(sha256.New, j.secret)
	expected.Write([]byte(value))
	decoded, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(decoded, expected.Sum(nil)) {
		return "", ErrCookieTampered
	}
	return value, nil
}

// Set writes a signed session cookie expiring with the token.
func (j *CookieJar) Set(c *fiber.Ctx, value string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     j.name,
		Value:    j.sign(value),
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   j.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Clear removes the session cookie.
func (j *CookieJar) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     j.name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   j.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
