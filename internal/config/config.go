package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lk16/reversi/internal/search"
)

const (
	DefaultSearchDepth     = search.DefaultDepth
	DefaultSearchThinkTime = search.DefaultTimeBudget
	MaxSearchDepth         = search.MaxDepth
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	Search            SearchConfig
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:          getEnvMust("REVERSI_REDIS_URL"),
		PostgresURL:       getEnvMust("REVERSI_POSTGRES_URL"),
		BasicAuthUsername: getEnvMust("REVERSI_SERVER_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_SERVER_BASIC_AUTH_PASS"),
		Token:             getEnvMust("REVERSI_SERVER_TOKEN"),
		Prefork:           getEnvMustBool("REVERSI_SERVER_PREFORK"),
		Search:            *LoadSearchConfig(),
	}
}

// SearchConfig holds the defaults for computer players.
type SearchConfig struct {
	Depth     int
	ThinkTime time.Duration
}

// LoadSearchConfig loads the search defaults, falling back to built-in values when unset.
func LoadSearchConfig() *SearchConfig {
	depth := getEnvInt("REVERSI_SEARCH_DEPTH", DefaultSearchDepth)
	if depth < 1 || depth > MaxSearchDepth {
		slog.Error("Search depth out of range", "min", 1, "max", MaxSearchDepth, "got", depth)
		os.Exit(1)
	}

	return &SearchConfig{
		Depth:     depth,
		ThinkTime: getEnvDuration("REVERSI_SEARCH_THINK_TIME", DefaultSearchThinkTime),
	}
}

type ArenaConfig struct {
	// PostgresURL is empty when results should not be stored.
	PostgresURL string
	Search      SearchConfig
}

func LoadArenaConfig() *ArenaConfig {
	return &ArenaConfig{
		PostgresURL: os.Getenv("REVERSI_POSTGRES_URL"),
		Search:      *LoadSearchConfig(),
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

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Error("Cannot load environment variable, it must be an integer", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		slog.Error("Cannot load environment variable, it must be a positive duration", "key", key, "value", value)
		os.Exit(1)
	}

	return parsed
}
