package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	// DefaultMoveTimeout bounds a single move search requested over the network.
	DefaultMoveTimeout = 5 * time.Second

	// DefaultMoveCacheTTL is how long a computed move stays in Redis.
	DefaultMoveCacheTTL = 24 * time.Hour
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost string
	ServerPort string
	Token      string
	Prefork    bool

	// RedisURL and PostgresURL are optional, the features that need them are disabled when empty.
	RedisURL    string
	PostgresURL string

	MoveTimeout  time.Duration
	MoveCacheTTL time.Duration
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:   getEnvMust("DESDEMONA_SERVER_HOST"),
		ServerPort:   getEnvMust("DESDEMONA_SERVER_PORT"),
		Token:        getEnvMust("DESDEMONA_TOKEN"),
		Prefork:      getEnvMustBool("DESDEMONA_PREFORK"),
		RedisURL:     os.Getenv("DESDEMONA_REDIS_URL"),
		PostgresURL:  os.Getenv("DESDEMONA_POSTGRES_URL"),
		MoveTimeout:  getEnvDuration("DESDEMONA_MOVE_TIMEOUT", DefaultMoveTimeout),
		MoveCacheTTL: getEnvDuration("DESDEMONA_MOVE_CACHE_TTL", DefaultMoveCacheTTL),
	}
}

// ArenaConfig holds the environment configuration of the arena command.
type ArenaConfig struct {
	// PostgresURL is optional, results are only stored when it is set.
	PostgresURL string
}

// LoadArenaConfig loads the arena configuration from environment variables.
func LoadArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		PostgresURL: os.Getenv("DESDEMONA_POSTGRES_URL"),
	}
}

// ClientConfig holds the configuration of commands that talk to a running server.
type ClientConfig struct {
	ServerURL string
	Token     string
}

// LoadClientConfig loads the client configuration from environment variables.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: strings.TrimSuffix(getEnvMust("DESDEMONA_SERVER_URL"), "/"),
		Token:     getEnvMust("DESDEMONA_TOKEN"),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}

// getEnvDuration returns the duration in the environment variable, or fallback if it is not set.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return duration
}
