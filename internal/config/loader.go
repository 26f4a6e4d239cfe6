package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const plinkoFile = "plinko.yaml"

// LoadPlinko loads Plinko configuration.
// Search order: customPath -> ~/.plinko/configs/plinko.yaml -> ./configs/plinko.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadPlinko(customPath string) (PlinkoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PlinkoConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePlinko(data)
		if err != nil {
			return PlinkoConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(plinkoFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePlinko(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", plinkoFile)); err == nil {
		if cfg, err := parsePlinko(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePlinko(defaultPlinkoYAML)
	if err != nil {
		return DefaultPlinkoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parsePlinko(data []byte) (PlinkoConfig, error) {
	cfg := DefaultPlinkoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PlinkoConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return PlinkoConfig{}, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".plinko", "configs", filename)
}
