package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Env:            EnvTest,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Auth: AuthConfig{
			AccessTokenSecret:     strings.Repeat("a", 10),
			CookieSecret:          strings.Repeat("c", 32),
			CookieName:            "access_token",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            12,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_EnumeratesEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.App.Env = "staging"
	cfg.Auth.AccessTokenSecret = "short"
	cfg.Auth.CookieSecret = "short"
	cfg.Auth.AccessTokenTTLMinutes = 0

	violations := cfg.Validate()
	require.Len(t, violations, 4)

	joined := strings.Join(violations, "\n")
	assert.Contains(t, joined, "APP_ENV")
	assert.Contains(t, joined, "AUTH_ACCESS_TOKEN_SECRET")
	assert.Contains(t, joined, "AUTH_COOKIE_SECRET")
	assert.Contains(t, joined, "AUTH_ACCESS_TOKEN_TTL_MINUTES")
}

func TestValidate_CookieSecretMinimumLength(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.CookieSecret = strings.Repeat("c", 31)

	violations := cfg.Validate()
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "AUTH_COOKIE_SECRET")
}

func TestValidate_GoogleBlockAllOrNothing(t *testing.T) {
	cfg := validConfig()
	cfg.Google.ClientID = "client-id"

	violations := cfg.Validate()
	require.Len(t, violations, 3)
	joined := strings.Join(violations, "\n")
	assert.Contains(t, joined, "GOOGLE_CLIENT_SECRET")
	assert.Contains(t, joined, "GOOGLE_SIGNUP_REDIRECT_URI")
	assert.Contains(t, joined, "GOOGLE_LOGIN_REDIRECT_URI")
}

func TestValidate_GoogleAbsentIsFine(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, cfg.Validate())
	assert.False(t, cfg.Google.Enabled())
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b"))
	assert.Equal(t, []string{"a"}, splitCSV("a,,"))
	assert.Empty(t, splitCSV(" , "))
}
