package log

import (
	"os"
	"strconv"
	"strings"
)

// Config logging configuration
type Config struct {
	// Level debug, info, warn, error
	Level string `json:"level" env:"LOG_LEVEL"`

	// Format console or json
	Format string `json:"format" env:"LOG_FORMAT"`

	// Output stdout, stderr or file:/path/to/log
	Output string `json:"output" env:"LOG_OUTPUT"`

	// AddSource adds file:line to each record
	AddSource bool `json:"add_source" env:"LOG_ADD_SOURCE"`

	// NoColor disables ANSI colors in console format
	NoColor bool `json:"no_color" env:"LOG_NO_COLOR"`
}

// NewConfigFromEnv builds the logging config from environment variables
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Level:     getEnvWithDefault("LOG_LEVEL", "info"),
		Format:    getEnvWithDefault("LOG_FORMAT", "console"),
		Output:    getEnvWithDefault("LOG_OUTPUT", "stdout"),
		AddSource: getEnvBool("LOG_ADD_SOURCE", false),
		NoColor:   getEnvBool("LOG_NO_COLOR", false),
	}

	if cfg.isDevelopment() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}

	return cfg
}

// isDevelopment checks ENV=development
func (c *Config) isDevelopment() bool {
	env := getEnvWithDefault("ENV", "production")
	return strings.ToLower(env) == "development"
}

// getEnvWithDefault reads an env var with a fallback
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool reads a boolean env var with a fallback
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}
