// Package config provides environment-driven configuration for the CLI.
package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogPretty switches to the human-readable console writer.
	LogPretty bool
	// Format is the default output format (text, json or csv); the
	// --format flag overrides it.
	Format string
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", true),
		Format:    getEnv("OUTPUT_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
