// Package config loads swaystart configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (SWAYSTART_*)
//  2. ~/.config/swaystart/config.yaml
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all swaystart configuration.
type Config struct {
	// PlaceholderCommand realizes one placeholder surface; {app_id} and
	// {title} are substituted per window.
	PlaceholderCommand string `yaml:"placeholder_command"`

	// UnmatchedWindow is the policy for a new window matching no
	// pending placeholder: "floating" or "leave".
	UnmatchedWindow string `yaml:"unmatched_window"`

	// Socket overrides the WM socket path from SWAYSOCK/I3SOCK.
	Socket string `yaml:"socket"`

	// ConfigFile is the path of the loaded file (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		PlaceholderCommand: "foot --app-id={app_id} --title={title}",
		UnmatchedWindow:    "floating",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	switch cfg.UnmatchedWindow {
	case "floating", "leave":
	default:
		return nil, fmt.Errorf("invalid unmatched_window policy %q (use floating or leave)", cfg.UnmatchedWindow)
	}
	return cfg, nil
}

func findConfigFile() (string, []byte, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(home, ".config", "swaystart", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, data, nil
}

func mergeFile(dst, src *Config) {
	if src.PlaceholderCommand != "" {
		dst.PlaceholderCommand = src.PlaceholderCommand
	}
	if src.UnmatchedWindow != "" {
		dst.UnmatchedWindow = src.UnmatchedWindow
	}
	if src.Socket != "" {
		dst.Socket = src.Socket
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SWAYSTART_PLACEHOLDER_COMMAND"); v != "" {
		cfg.PlaceholderCommand = v
	}
	if v := os.Getenv("SWAYSTART_UNMATCHED_WINDOW"); v != "" {
		cfg.UnmatchedWindow = v
	}
	if v := os.Getenv("SWAYSTART_SOCKET"); v != "" {
		cfg.Socket = v
	}
}
