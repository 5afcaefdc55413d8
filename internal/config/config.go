// Package config loads the optional jam configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the directory created under the user's config directory.
	AppName = "jam"
	// ConfigFile is the default file name looked up in that directory.
	ConfigFile = "config.toml"
	// PathEnv points at an alternative config file.
	PathEnv = "JAM_CONFIG"
)

// Config holds defaults that flags and environment variables override.
type Config struct {
	// File is the append-only log of completed entries.
	File string `toml:"file" yaml:"file"`
	// RunningFile holds entries that have been started but not stopped.
	RunningFile string `toml:"running_file" yaml:"running_file"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultPath returns <UserConfigDir>/jam/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, ConfigFile), nil
}

// Load reads the config file at path, choosing the decoder from the
// extension: .yaml and .yml use YAML, anything else TOML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault resolves the config path from explicit, then JAM_CONFIG, then
// DefaultPath. A missing file is only an error when the path was given
// explicitly or through the environment.
func LoadOrDefault(explicit string) (Config, string, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(PathEnv))
	}
	required := path != ""

	if !required {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, "", nil
		}
	}

	cfg, err := Load(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Config{}, path, nil
		}
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate checks the values that can be validated without touching disk.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
}
