package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Driver names accepted for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DatabaseURL string
	DBPath      string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string

	AuthRateLimit   int
	APIRateLimit    int
	RateLimitWindow time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		Env:         fallback(os.Getenv("APP_ENV"), "development"),
		DBDriver:    fallback(os.Getenv("DB_DRIVER"), DriverSQLite),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBPath:      fallback(os.Getenv("DB_PATH"), "./data/pocketdue.db"),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "pocketdue-api"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),

		AuthRateLimit:   positiveInt(os.Getenv("AUTH_RATE_LIMIT"), 5),
		APIRateLimit:    positiveInt(os.Getenv("API_RATE_LIMIT"), 100),
		RateLimitWindow: time.Duration(positiveInt(os.Getenv("RATE_LIMIT_WINDOW_MINUTES"), 15)) * time.Minute,
	}

	cfg.JWTTTL = time.Duration(positiveInt(os.Getenv("JWT_TTL_DAYS"), 7)) * 24 * time.Hour

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode.
// Error responses omit internal detail when true.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
