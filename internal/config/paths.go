package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "goodmorning"

func ConfigRoot() string {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	// Linux/macOS default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigPath() string {
	return filepath.Join(ConfigRoot(), "config.yaml")
}

func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// InitDefault writes the default config unless one is already present.
func InitDefault() (string, error) {
	path := ConfigPath()
	if Exists() {
		return path, os.ErrExist
	}

	if err := os.MkdirAll(ConfigRoot(), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// Update loads the stored config (or defaults), applies fn and writes it back.
func Update(fn func(*Config)) (string, error) {
	path := ConfigPath()

	cfg, err := loadYAML(path)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else if err != nil {
		return "", fmt.Errorf("failed to load config %s: %w", path, err)
	}

	fn(cfg)

	if err := os.MkdirAll(ConfigRoot(), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return path, SaveYAML(cfg, path)
}
