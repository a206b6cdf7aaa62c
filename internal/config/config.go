// Package config resolves algebriz settings from defaults, an optional YAML
// file and ALGEBRIZ_* environment variables. Command-line flags are layered
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/algebriz/internal/llm"
)

// Config is the resolved application configuration.
type Config struct {
	// DBPath is the journal database. Empty means store.DefaultDBPath.
	DBPath string `yaml:"db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Level is the requested difficulty level for new problems.
	Level int `yaml:"level"`

	// LearnerID names the learner in play sessions. Empty means a fresh id
	// per session.
	LearnerID string `yaml:"learner"`

	LLM llm.Config `yaml:"llm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Level:    1,
		LLM:      llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/algebriz/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "algebriz", "config.yaml"), nil
}

// Load resolves the configuration. An explicit path must exist; when path
// is empty the default location is read if present. When no LLM provider
// is configured, the standard vendor API key variables are probed.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if !cfg.LLM.Enabled() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg.LLM = discovered
		}
	}

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with any ALGEBRIZ_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ALGEBRIZ_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("ALGEBRIZ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ALGEBRIZ_LEARNER"); v != "" {
		c.LearnerID = v
	}
	if v := os.Getenv("ALGEBRIZ_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALGEBRIZ_LEVEL: %w", err)
		}
		c.Level = n
	}
	c.LLM.ApplyEnv()
	return nil
}

// Validate checks the log level and the LLM section.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Logger builds a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
