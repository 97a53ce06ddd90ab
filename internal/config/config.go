package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Roots      []string `yaml:"roots"`
	Extension  string   `yaml:"extension"`
	Concurrent bool     `yaml:"concurrent"`
	MaxWorkers int      `yaml:"max_workers"`
	Output     string   `yaml:"output"`
	Log        string   `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Extension:  ".txt",
		Concurrent: false,
		MaxWorkers: 4,
		Output:     "output.txt",
		Log:        "log.txt",
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".textgather", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks a run configuration once at the boundary, so the collector
// can assume well-formed inputs.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return errors.New("at least one root directory is required")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension must begin with '.', got %q", c.Extension)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if c.Log == "" {
		return errors.New("log path must not be empty")
	}
	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
