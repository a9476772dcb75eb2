package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome              = "KEYFORT_HOME"
	EnvLogLevel          = "KEYFORT_LOG_LEVEL"
	EnvLogFile           = "KEYFORT_LOG_FILE"
	EnvU2F               = "KEYFORT_U2F"
	EnvMaxUnlockAttempts = "KEYFORT_MAX_UNLOCK_ATTEMPTS"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv(EnvU2F); v != "" {
		cfg.Security.U2F = parseBool(v)
	}

	if v := os.Getenv(EnvMaxUnlockAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Security.MaxUnlockAttempts = n
		}
	}
}

// parseBool interprets common boolean spellings; anything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
