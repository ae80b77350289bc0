package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is everything the API reads from the environment.
type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	DBDriver    string // postgres | sqlite
	DatabaseURL string
	SQLitePath  string
	JWTSecret   string
	JWTTTL      time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	cfg := Config{
		Port:        Getenv("PORT", "3000"),
		AppEnv:      Getenv("APP_ENV", "development"),
		LogLevel:    Getenv("LOG_LEVEL", "info"),
		DBDriver:    Getenv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  Getenv("SQLITE_PATH", "costcalc.db"),
		JWTSecret:   Getenv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTTTL:      time.Duration(GetenvInt("JWT_TTL_HOURS", 24)) * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tokyo",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			Getenv("DB_PORT", "5432"),
		)
	}
	return cfg
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.DatabaseURL
}

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt is Getenv for integers; unparsable values use the fallback.
func GetenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}
