package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devSessionSecret = "eventhub-dev-secret"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	DefaultLocale string

	HTTP     HTTPConfig
	Session  SessionConfig
	Database DatabaseConfig
}

type HTTPConfig struct {
	Addr              string
	FrontendURL       string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	ShutdownTimeout   time.Duration
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// DatabaseConfig selects the storage backend: an empty URL keeps everything in memory.
type DatabaseConfig struct {
	URL     string
	Migrate bool
}

// Load reads the configuration from the environment (and an optional .env file) and validates it.
func Load() (*Config, error) {
	// .env is optional, variables may come from the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", EnvProduction),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":5000"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("TOKEN_AUTH_SECRET"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	var err error
	if cfg.HTTP.RateLimitRequests, err = getInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.HTTP.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.Database.Migrate, err = getBool("MIGRATE", true); err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("config: HTTP_ADDR must not be empty")
	}

	if strings.TrimSpace(c.Session.Secret) == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("config: TOKEN_AUTH_SECRET is required outside of development")
		}
		c.Session.Secret = devSessionSecret
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.Session.TTL)
	}

	if c.HTTP.RateLimitRequests > 0 && c.HTTP.RateLimitWindow <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}

	if c.Database.URL != "" {
		parsed, err := url.Parse(c.Database.URL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.Database.URL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.Database.URL)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}
