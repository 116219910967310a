// Package daemon holds the long-running process glue: configuration,
// logger construction, persisted settings, and the module supervisor.
package daemon

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for tunebridged.
type Config struct {
	Server ServerConfig `toml:"server"`
	Local  LocalConfig  `toml:"local"`
}

// ServerConfig defines shared daemon settings.
type ServerConfig struct {
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogOutput   string `toml:"log_output"`
	GatewayPort int    `toml:"gateway_port"`
	DataDir     string `toml:"data_dir"`
}

// LocalConfig configures the on-device music source.
type LocalConfig struct {
	Root string `toml:"root"`
}

// LoadConfig loads a config file from path. A missing file yields the
// zero config so the daemon can start with defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path required")
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config location.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tunebridge", "tunebridged.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tunebridge", "tunebridged.toml"), nil
}

// DataDir resolves the directory holding the registry and settings
// files, preferring the configured one.
func (c Config) DataDir() (string, error) {
	if c.Server.DataDir != "" {
		return c.Server.DataDir, nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tunebridge"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "tunebridge"), nil
}

// LocalRoot resolves the local music root, defaulting to ~/Music.
func (c Config) LocalRoot() (string, error) {
	if c.Local.Root != "" {
		return c.Local.Root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Music"), nil
}
