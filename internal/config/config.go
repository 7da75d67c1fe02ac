package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environments the service may run under.
const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvTest  = "test"
	EnvNgrok = "ngrok"
)

const (
	minAccessSecretLen = 10
	minCookieSecretLen = 32
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Google   GoogleConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	AllowedOrigins        []string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session and token parameters.
type AuthConfig struct {
	AccessTokenSecret     string
	CookieSecret          string
	CookieName            string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// GoogleConfig holds OAuth client settings for Google signup/login.
type GoogleConfig struct {
	ClientID          string
	ClientSecret      string
	SignupRedirectURL string
	LoginRedirectURL  string
}

// Load reads configuration from environment variables and validates it.
// Any violation aborts startup; all violations are reported at once.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "movie-service"),
			Env:                   getEnv("APP_ENV", EnvDev),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			AllowedOrigins:        splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AccessTokenSecret:     os.Getenv("AUTH_ACCESS_TOKEN_SECRET"),
			CookieSecret:          os.Getenv("AUTH_COOKIE_SECRET"),
			CookieName:            getEnv("AUTH_COOKIE_NAME", "access_token"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Google: GoogleConfig{
			ClientID:          os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret:      os.Getenv("GOOGLE_CLIENT_SECRET"),
			SignupRedirectURL: os.Getenv("GOOGLE_SIGNUP_REDIRECT_URI"),
			LoginRedirectURL:  os.Getenv("GOOGLE_LOGIN_REDIRECT_URI"),
		},
	}

	if violations := cfg.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(violations, "; "))
	}
	return cfg, nil
}

// Validate returns every configuration violation. An empty slice means the
// configuration is usable; no partial startup is permitted otherwise.
func (c *Config) Validate() []string {
	var violations []string

	switch c.App.Env {
	case EnvDev, EnvProd, EnvTest, EnvNgrok:
	default:
		violations = append(violations, fmt.Sprintf("APP_ENV must be one of dev|prod|test|ngrok, got %q", c.App.Env))
	}
	if len(c.App.AllowedOrigins) == 0 {
		violations = append(violations, "ALLOWED_ORIGINS must list at least one origin")
	}
	if len(c.Auth.AccessTokenSecret) < minAccessSecretLen {
		violations = append(violations, fmt.Sprintf("AUTH_ACCESS_TOKEN_SECRET must be at least %d characters", minAccessSecretLen))
	}
	if len(c.Auth.CookieSecret) < minCookieSecretLen {
		violations = append(violations, fmt.Sprintf("AUTH_COOKIE_SECRET must be at least %d characters", minCookieSecretLen))
	}
	if c.Auth.CookieName == "" {
		violations = append(violations, "AUTH_COOKIE_NAME must not be empty")
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		violations = append(violations, "AUTH_ACCESS_TOKEN_TTL_MINUTES must be positive")
	}

	// Google settings are all-or-nothing: the OAuth routes are registered
	// only when a client id is present, but a half-filled block is a mistake.
	if c.Google.ClientID != "" {
		if c.Google.ClientSecret == "" {
			violations = append(violations, "GOOGLE_CLIENT_SECRET required when GOOGLE_CLIENT_ID is set")
		}
		if c.Google.SignupRedirectURL == "" {
			violations = append(violations, "GOOGLE_SIGNUP_REDIRECT_URI required when GOOGLE_CLIENT_ID is set")
		}
		if c.Google.LoginRedirectURL == "" {
			violations = append(violations, "GOOGLE_LOGIN_REDIRECT_URI required when GOOGLE_CLIENT_ID is set")
		}
	}

	return violations
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the access token lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// Enabled reports whether Google OAuth is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != ""
}

func splitCSV(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
