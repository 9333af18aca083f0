// config/config.go - Environment configuration
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	Port        string `validate:"required,numeric"`
	AppEnv      string `validate:"oneof=development production test"`
	DatabaseURL string `validate:"required"`
	JWTSecret   string `validate:"required,min=32"`
	CORSOrigins string `validate:"required"`
	Timezone    string `validate:"required"`

	RateLimitEnabled     bool
	RateLimitMaxRequests int           `validate:"gt=0"`
	RateLimitWindow      time.Duration `validate:"gt=0"`

	// Location is Timezone resolved. Every day-boundary computation uses it.
	Location *time.Location `validate:"-"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if present) and the process environment, then validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		AppEnv:               getEnv("APP_ENV", "development"),
		DatabaseURL:          databaseURL(),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CORSOrigins:          getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Timezone:             getEnv("APP_TIMEZONE", "UTC"),
		RateLimitEnabled:     getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitMaxRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 900000)) * time.Millisecond,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.IsProduction() && cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("WARNING: CORS_ORIGINS not properly configured for production")
	}
	return cfg, nil
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "ecotrack"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "":
		return def
	case "false", "0", "no":
		return false
	}
	return true
}
