// Package config loads stargrab's runtime settings from YAML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/stargrab.yaml
var defaultYAML []byte

// Config holds settings that are not part of a level or prefab.
type Config struct {
	Level       string  `yaml:"level"`
	Seed        uint64  `yaml:"seed"`
	Debug       bool    `yaml:"debug"`
	Watch       bool    `yaml:"watch"`
	LogLevel    string  `yaml:"log_level"`
	DBPath      string  `yaml:"db_path"`
	WindowScale float64 `yaml:"window_scale"`
}

// Default returns the hardcoded defaults, used when the embedded YAML
// cannot be parsed.
func Default() Config {
	return Config{
		Level:       "meadow",
		LogLevel:    "info",
		DBPath:      "~/.stargrab/scores.db",
		WindowScale: 1,
	}
}

// Load reads the config.
// Search order: customPath -> ~/.stargrab/config.yaml -> ./configs/stargrab.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "stargrab.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// parse decodes data over the defaults so omitted keys keep their values.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.WindowScale <= 0 {
		cfg.WindowScale = 1
	}
	return cfg, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stargrab", filename)
}
