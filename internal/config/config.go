// Package config handles the XDG configuration directory and runtime settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// EnvFile holds KEY=value settings inside the config directory.
	EnvFile = "config.env"

	// DefaultBindAddr is where `tasklist serve` listens unless told otherwise.
	DefaultBindAddr = "127.0.0.1:8080"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "tasklist"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Color enables ANSI color in text output.
	Color bool

	// BindAddr is the listen address of the page server.
	BindAddr string

	// MetricsNamespace prefixes the page server's metrics.
	MetricsNamespace string
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:              dir,
		Color:            true,
		BindAddr:         DefaultBindAddr,
		MetricsNamespace: DefaultMetricsNamespace,
	}, nil
}

// Load creates a Config like New and then applies settings from EnvFile in
// the config directory, overridden by the process environment.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	fileEnv, err := godotenv.Read(cfg.EnvPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	if v := lookup("TASKLIST_BIND_ADDR"); v != "" {
		cfg.BindAddr = v
	}
	if v := lookup("TASKLIST_METRICS_NAMESPACE"); v != "" {
		cfg.MetricsNamespace = v
	}
	if lookup("NO_COLOR") != "" {
		cfg.Color = false
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the settings file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// DebugLogger returns a logger writing to w with a "debug: " prefix when
// Debug is set, and a discarding logger otherwise.
func (c *Config) DebugLogger(w io.Writer) *log.Logger {
	if !c.Debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "debug: ", 0)
}
