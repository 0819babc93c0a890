// Package config loads application settings from the environment and an
// optional .env file, and builds the application logger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/abhisek/cfdroid/internal/store"
)

// Config holds application-level settings. LLM provider settings live in
// llm.Config and are parsed separately.
type Config struct {
	// DBPath overrides the database location. Empty means the XDG default.
	DBPath string `env:"DB"`

	// DataDir overrides $XDG_DATA_HOME/cfdroid.
	DataDir string `env:"DATA_DIR"`

	// LogFile is where the JSON log is written. Empty means
	// <data dir>/cfdroid.log.
	LogFile  string `env:"LOG_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	LogMaxSizeMB  int `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogMaxBackups int `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	// QuizFeedbackDelay is how long answer feedback stays on screen before
	// the quiz advances.
	QuizFeedbackDelay time.Duration `env:"QUIZ_FEEDBACK_DELAY" envDefault:"1500ms"`

	// ChatHistory is how many transcript messages are sent to the model
	// as context.
	ChatHistory int `env:"CHAT_HISTORY" envDefault:"20"`

	// CatalogFile is an optional YAML file of extra or replacement topics.
	CatalogFile string `env:"CATALOG_FILE"`

	// IdentityFile stores the per-install session id.
	IdentityFile string `env:"IDENTITY_FILE"`
}

// Load reads .env (when present) and parses CFDROID_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg, env.Options{Prefix: "CFDROID_"}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ChatHistory < 0 {
		return nil, fmt.Errorf("CFDROID_CHAT_HISTORY must not be negative")
	}
	if cfg.QuizFeedbackDelay < 0 {
		return nil, fmt.Errorf("CFDROID_QUIZ_FEEDBACK_DELAY must not be negative")
	}
	return cfg, nil
}

// ResolveDataDir returns the configured data directory, or the XDG default.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return store.DataDir()
}

// ResolveDBPath returns the database path. The directory is created.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	if c.DataDir != "" {
		p := filepath.Join(c.DataDir, "cfdroid.db")
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// ResolveLogFile returns the log file path. The directory is created.
func (c *Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, store.EnsureDir(c.LogFile)
	}
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "cfdroid.log")
	return p, store.EnsureDir(p)
}

// ResolveIdentityFile returns the identity file path.
func (c *Config) ResolveIdentityFile() (string, error) {
	if c.IdentityFile != "" {
		return c.IdentityFile, store.EnsureDir(c.IdentityFile)
	}
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "identity")
	return p, store.EnsureDir(p)
}

// Rotation returns the log file rotation limits.
func (c *Config) Rotation() Rotation {
	return Rotation{MaxSizeMB: c.LogMaxSizeMB, MaxBackups: c.LogMaxBackups, MaxAgeDays: c.LogMaxAgeDays}
}

// Level parses LogLevel. Unknown values fall back to INFO.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(c.LogLevel)))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
