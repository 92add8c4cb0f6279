package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/notetab/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required: HMAC secret for signing access tokens
	Issuer    string        // Optional: issuer claim for tokens (default: notetab)
	TokenTTL  time.Duration // Optional: access token lifetime (default: 1h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./notes.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Local development keeps its settings in a .env file; absence is fine.
	_ = godotenv.Load()

	return Config{
		JWTSecret:           os.Getenv("NOTES_JWT_SECRET"),
		Issuer:              getEnvOrDefault("NOTES_ISSUER", "notetab"),
		TokenTTL:            getEnvDurationOrDefault("NOTES_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		DatabaseFile:        getEnvOrDefault("NOTES_DATABASE_FILE", "notes.db"),
		PepperFile:          getEnvOrDefault("NOTES_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
