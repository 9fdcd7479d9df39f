package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig selects and tunes the transcription providers.
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig is the per-provider section of the providers YAML file.
type ProviderConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Model      string `yaml:"model,omitempty"`
	Language   string `yaml:"language,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// DefaultProvidersConfig is used when no providers file exists.
func DefaultProvidersConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "gemini",
		Providers: map[string]ProviderConfig{
			"gemini": {
				Enabled:    true,
				Model:      "gemini-2.5-flash",
				TimeoutSec: 120,
			},
			"whisper": {
				Enabled:    true,
				Model:      "whisper-1",
				TimeoutSec: 120,
			},
		},
	}
}

// LoadProvidersConfig loads provider configuration from a YAML file. A
// missing file yields the defaults rather than an error.
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultProvidersConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProvidersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = "gemini"
	}
	cfg.expandEnvironmentVariables()

	if _, ok := cfg.Providers[cfg.DefaultProvider]; !ok {
		return nil, fmt.Errorf("default provider %q has no configuration section", cfg.DefaultProvider)
	}

	return &cfg, nil
}

// expandEnvironmentVariables expands ${VAR} references in string fields so
// model names can be swapped without editing the file.
func (c *ProvidersConfig) expandEnvironmentVariables() {
	for name, p := range c.Providers {
		if strings.Contains(p.Model, "$") {
			p.Model = os.ExpandEnv(p.Model)
		}
		if strings.Contains(p.Language, "$") {
			p.Language = os.ExpandEnv(p.Language)
		}
		c.Providers[name] = p
	}
}
