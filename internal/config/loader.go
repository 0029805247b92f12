package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const shapeDropFile = "shapedrop.yaml"

// LoadShapeDrop loads the game configuration.
// Search order: customPath -> ~/.shapedrop/configs/shapedrop.yaml ->
// ./configs/shapedrop.yaml -> embedded default.
// Files only need the keys they override; everything else keeps its default.
func LoadShapeDrop(customPath string) (ShapeDropConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShapeDropConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseShapeDrop(data)
		if err != nil {
			return ShapeDropConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(shapeDropFile), filepath.Join("configs", shapeDropFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseShapeDrop(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseShapeDrop(defaultShapeDropYAML)
	if err != nil {
		return DefaultShapeDropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseShapeDrop decodes data over the built-in defaults and validates it.
func parseShapeDrop(data []byte) (ShapeDropConfig, error) {
	cfg := DefaultShapeDropConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteDefault writes the embedded default configuration to path, creating
// parent directories. An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, defaultShapeDropYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the per-user config file location, or empty if the
// home directory is unavailable.
func UserConfigPath() string {
	return userConfigPath(shapeDropFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shapedrop", "configs", filename)
}
