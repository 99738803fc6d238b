// Package config handles the XDG configuration directory, the optional
// config.toml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "agenda"

	// ConfigFile is the optional configuration filename inside Dir.
	ConfigFile = "config.toml"

	// DataSubdir is the default data directory inside Dir.
	DataSubdir = "data"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Write modes.
const (
	WriteSync  = "sync"
	WriteAsync = "async"
)

// Environment variables that override config.toml.
const (
	EnvBackend   = "AGENDA_BACKEND"
	EnvDataDir   = "AGENDA_DATA_DIR"
	EnvWriteMode = "AGENDA_WRITE_MODE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the storage backend: file, sqlite or memory.
	Backend string `toml:"backend"`

	// DataDir is where backends keep their files. Relative paths are
	// resolved against Dir.
	DataDir string `toml:"data_dir"`

	// WriteMode is sync (write before returning) or async (write-behind).
	WriteMode string `toml:"write_mode"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/agenda or $HOME/.config/agenda.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		Backend:   BackendFile,
		WriteMode: WriteSync,
	}, nil
}

// Load is New followed by config.toml and environment overrides.
// A missing config.toml is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from path. A missing file is ignored.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Config) loadFile() error {
	path := c.ConfigFilePath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		c.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWriteMode)); v != "" {
		c.WriteMode = v
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.WriteMode = strings.ToLower(strings.TrimSpace(c.WriteMode))
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid backend %q, must be one of: file, sqlite, memory", c.Backend)
	}
	switch c.WriteMode {
	case WriteSync, WriteAsync:
	default:
		return fmt.Errorf("invalid write_mode %q, must be one of: sync, async", c.WriteMode)
	}
	return nil
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

// ConfigFilePath returns the path to config.toml.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the resolved data directory.
func (c *Config) DataPath() string {
	if c.DataDir == "" {
		return filepath.Join(c.Dir, DataSubdir)
	}
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(c.Dir, c.DataDir)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
