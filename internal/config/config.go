// Package config resolves settings from a local .env file, the environment and defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nissyi-gh/daytrack/internal/lifecycle"
)

const (
	KeyBackend     = "DAYTRACK_BACKEND"
	KeyDataDir     = "DAYTRACK_DATA_DIR"
	KeyFile        = "DAYTRACK_FILE"
	KeyTransitions = "DAYTRACK_TRANSITIONS"
	KeyLogLevel    = "DAYTRACK_LOG_LEVEL"
)

// Config holds the application configuration.
type Config struct {
	Backend     string
	DataDir     string
	File        string
	Transitions string
	LogLevel    string
}

func defaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "daytrack"), nil
}

// Load reads configuration with precedence: .env in dir > environment > defaults.
func Load(dir string) (*Config, error) {
	local, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil {
		local = map[string]string{}
	}

	get := func(key, def string) string {
		if v, ok := local[key]; ok && v != "" {
			return v
		}
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Backend:     strings.ToLower(get(KeyBackend, "csv")),
		DataDir:     get(KeyDataDir, ""),
		File:        get(KeyFile, ""),
		Transitions: strings.ToLower(get(KeyTransitions, "any")),
		LogLevel:    strings.ToLower(get(KeyLogLevel, "info")),
	}
	if cfg.DataDir == "" {
		if cfg.DataDir, err = defaultDataDir(); err != nil {
			return nil, fmt.Errorf("determine data dir: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component understands.
func (c *Config) Validate() error {
	switch c.Backend {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("%s must be csv or sqlite, got %q", KeyBackend, c.Backend)
	}
	if _, err := lifecycle.ParsePolicy(c.Transitions); err != nil {
		return fmt.Errorf("%s: %w", KeyTransitions, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// StorePath returns the data file location. A relative File is taken
// relative to DataDir.
func (c *Config) StorePath() string {
	name := c.File
	if name == "" {
		name = "tasks.csv"
		if c.Backend == "sqlite" {
			name = "tasks.db"
		}
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// LogPath returns where the JSON log is written.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "daytrack.log")
}

// Policy returns the status transition policy.
func (c *Config) Policy() lifecycle.Policy {
	p, _ := lifecycle.ParsePolicy(c.Transitions)
	return p
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return lvl, nil
}
