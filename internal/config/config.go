// Package config provides configuration loading for LambdaBridge from YAML
// files and environment variables. Environment variables take precedence
// over file values, which take precedence over defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// Config represents the complete adapter configuration.
type Config struct {
	Global   GlobalConfig   `yaml:"global"`
	Encoding EncodingConfig `yaml:"encoding"`
	Service  ServiceConfig  `yaml:"service"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// GlobalConfig represents global adapter settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level" env:"LAMBDABRIDGE_LOG_LEVEL"`
}

// EncodingConfig represents response encoding settings.
type EncodingConfig struct {
	// BinaryMediaTypes lists the content types transmitted as binary
	// payloads. Every other content type is transmitted as text.
	BinaryMediaTypes []string `yaml:"binary_media_types" env:"LAMBDABRIDGE_BINARY_MEDIA_TYPES"`
}

// ServiceConfig represents settings handed to the service factory.
type ServiceConfig struct {
	LocalAddr string `yaml:"local_addr" env:"LAMBDABRIDGE_LOCAL_ADDR"`
}

// MetricsConfig represents metrics settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"LAMBDABRIDGE_METRICS_ENABLED"`
	Namespace string `yaml:"namespace" env:"LAMBDABRIDGE_METRICS_NAMESPACE"`
}

// NewDefault returns a configuration with sensible defaults.
func NewDefault() *Config {
	return &Config{
		Global: GlobalConfig{
			LogLevel: "INFO",
		},
		Encoding: EncodingConfig{
			BinaryMediaTypes: nil,
		},
		Service: ServiceConfig{
			LocalAddr: "127.0.0.1:8080",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "lambdabridge",
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// LoadFromEnv applies environment variable overrides.
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// filename (skipped when filename is empty), then environment overrides.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	if filename != "" {
		if err := cfg.LoadFromFile(filename); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	logLevelValid := false
	for _, level := range validLogLevels {
		if strings.EqualFold(c.Global.LogLevel, level) {
			logLevelValid = true
			break
		}
	}
	if !logLevelValid {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.Global.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.Service.LocalAddr == "" {
		return fmt.Errorf("service local_addr cannot be empty")
	}

	for _, mt := range c.Encoding.BinaryMediaTypes {
		if strings.TrimSpace(mt) == "" {
			return fmt.Errorf("binary_media_types cannot contain empty entries")
		}
	}

	return nil
}
