package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the service's environment configuration.
type Config struct {
	Port          string
	NATSURL       string // empty disables alert publishing
	PurgeSchedule string
	RunRetention  time.Duration
}

// Load reads .env when present and resolves the configuration from the
// environment with sane defaults. Database settings are read directly by
// the database package (DB_HOST, DB_USER, DB_PASSWORD, DB_NAME, DB_PORT).
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	retention := 24 * time.Hour
	if raw := getEnv("RUN_RETENTION", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("Invalid RUN_RETENTION %q, keeping default %s: %v", raw, retention, err)
		} else {
			retention = parsed
		}
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		NATSURL:       getEnv("NATS_URL", ""),
		PurgeSchedule: getEnv("RUN_PURGE_SCHEDULE", "@hourly"),
		RunRetention:  retention,
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
