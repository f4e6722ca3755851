package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the optional configuration file. Every field has a
// built-in default; flags override whatever the file supplies.
type Config struct {
	Tools    ToolsConfig    `yaml:"tools"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ToolsConfig contains paths to the external engines
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
	Sox     string `yaml:"sox"`
}

// DefaultsConfig contains default processing parameters
type DefaultsConfig struct {
	SoxOptions     string   `yaml:"sox_options"`
	NoiseReduction *float64 `yaml:"noise_reduction"`
	NoiseWindow    string   `yaml:"noise_window"`
}

// DefaultPath returns the conventional config location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audiosweep", "config.yaml")
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
