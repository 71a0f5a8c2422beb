package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string

	// MigrationsPath points at the SQL migration directory applied on
	// API startup.
	MigrationsPath string

	// JWTSecret is the base64-encoded shared signing secret. Every service
	// holding it can authorize requests without calling the identity store.
	JWTSecret string
	JWTTTL    time.Duration

	OutboxPollInterval time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "turbo"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	ttl, err := envDuration("JWT_TTL", 10*time.Hour)
	if err != nil {
		return Config{}, err
	}
	pollInterval, err := envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:        service,
		HTTPPort:           port,
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		MigrationsPath:     migrationsPath,
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:             ttl,
		OutboxPollInterval: pollInterval,
	}, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New(name + " must be a duration such as 10h or 30s")
	}
	return value, nil
}
