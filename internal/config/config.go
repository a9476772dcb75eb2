// Package config provides configuration management for Keyfort.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Security SecurityConfig `yaml:"security"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	// U2F enables the time/timezone confirmation and secure-counter
	// step of the recovery workflow.
	U2F bool `yaml:"u2f"`

	// MaxUnlockAttempts is the budget of wrong-password unlocks before
	// the stored seed is erased.
	MaxUnlockAttempts int `yaml:"max_unlock_attempts"`

	// MemoryLock controls whether secret buffers are mlocked.
	MemoryLock bool `yaml:"memory_lock"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.keyfort",
		Security: SecurityConfig{
			U2F:               false,
			MaxUnlockAttempts: 10,
			MemoryLock:        true,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.keyfort/keyfort.log",
		},
	}
}

// Load reads configuration from the specified file. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default keyfort home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyfort"
	}
	return filepath.Join(home, ".keyfort")
}

// ExpandHome resolves a leading "~/" against the user home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
