package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "exrunner.yaml"

// Config represents the application configuration
type Config struct {
	Examples ExamplesConfig `yaml:"examples"`
	Tool     ToolConfig     `yaml:"tool"`
	Watch    WatchConfig    `yaml:"watch"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ExamplesConfig describes where example sources live and how they are recognised.
type ExamplesConfig struct {
	Dir    string `yaml:"dir"`
	Suffix string `yaml:"suffix"`
	Order  string `yaml:"order"` // name | listing
}

// ToolConfig describes the external build tool invoked once per example.
type ToolConfig struct {
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"` // "{example}" is replaced by the identifier
	Dir     string            `yaml:"dir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// WatchConfig configures `exrunner watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ScheduleConfig configures `exrunner schedule`.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// MetricsConfig configures optional Prometheus export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // written after each pass
	Listen   string `yaml:"listen,omitempty"`   // HTTP address for watch/schedule modes
}

// Load loads configuration from the specified file. The file must exist.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, derrors.ConfigNotFound(configPath)
	}
	return load(configPath)
}

// LoadOptional behaves like Load but falls back to defaults when the file is absent.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := loadEnvFile(); err != nil {
			return nil, derrors.ConfigInvalid(".env", err)
		}
		cfg := &Config{}
		if err := finalize(cfg, configPath); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return load(configPath)
}

func load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		return nil, derrors.ConfigInvalid(".env", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("failed to parse config file: %w", err))
	}

	if err := finalize(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

func finalize(cfg *Config, configPath string) error {
	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		if re, ok := derrors.As(err); ok {
			return re.WithContext("path", configPath)
		}
		return err
	}
	return nil
}
