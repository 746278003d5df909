package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for ledgersense-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Analysis pipeline configuration
	Analysis AnalysisConfig `yaml:"analysis"`

	// File upload limits
	Upload UploadConfig `yaml:"upload"`

	// Concept registry configuration
	Registry RegistryConfig `yaml:"registry"`

	// Column description catalogue configuration
	Catalog CatalogConfig `yaml:"catalog"`
}

// AnalysisConfig holds settings for the column analysis pipeline.
type AnalysisConfig struct {
	// Workers bounds how many columns are analyzed concurrently per request.
	Workers int `yaml:"workers" env:"ANALYSIS_WORKERS" env-default:"4"`
	// DescriptionTimeoutMs caps each catalogue description lookup.
	DescriptionTimeoutMs int `yaml:"description_timeout_ms" env:"ANALYSIS_DESCRIPTION_TIMEOUT_MS" env-default:"2000"`
}

// DescriptionTimeout returns the catalogue lookup timeout as a duration.
func (c *AnalysisConfig) DescriptionTimeout() time.Duration {
	return time.Duration(c.DescriptionTimeoutMs) * time.Millisecond
}

// UploadConfig holds limits for dataset file uploads.
type UploadConfig struct {
	// MaxFileSizeMB is the largest CSV upload accepted, in megabytes.
	MaxFileSizeMB int64 `yaml:"max_file_size_mb" env:"UPLOAD_MAX_FILE_SIZE_MB" env-default:"10"`
}

// MaxFileSizeBytes returns the upload cap in bytes.
func (c *UploadConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB << 20
}

// RegistryConfig holds the concept registry source. An empty path uses the
// registry embedded in the binary.
type RegistryConfig struct {
	Path string `yaml:"path" env:"REGISTRY_PATH" env-default:""`
}

// CatalogConfig holds the column description catalogue source. An empty path
// uses the catalogue embedded in the binary.
type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH" env-default:""`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	// Load config from YAML file with environment variable overrides
	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate rejects values the pipeline cannot run with.
func (c *Config) validate() error {
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis workers must be at least 1, got %d", c.Analysis.Workers)
	}
	if c.Analysis.DescriptionTimeoutMs < 0 {
		return fmt.Errorf("description timeout must not be negative, got %d", c.Analysis.DescriptionTimeoutMs)
	}
	if c.Upload.MaxFileSizeMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MB, got %d", c.Upload.MaxFileSizeMB)
	}
	return nil
}
