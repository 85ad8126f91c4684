package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	// EnvExtractionBaseURL overrides the extraction service base URL.
	EnvExtractionBaseURL = "EXTRACTION_BASE_URL"

	// EnvExtractionTimeout overrides the extraction request timeout.
	EnvExtractionTimeout = "EXTRACTION_TIMEOUT"

	// EnvExtractionModel overrides the extraction model identifier.
	EnvExtractionModel = "EXTRACTION_MODEL"
)

// ExtractionConfig contains configuration for the document extraction service.
type ExtractionConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	Model   string `toml:"model"`
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *ExtractionConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the extraction configuration.
func (c *ExtractionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ExtractionConfig) Merge(overlay *ExtractionConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

func (c *ExtractionConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:9090"
	}
	if c.Timeout == "" {
		c.Timeout = "120s"
	}
	if c.Model == "" {
		c.Model = "default"
	}
}

func (c *ExtractionConfig) loadEnv() {
	if v := os.Getenv(EnvExtractionBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvExtractionTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvExtractionModel); v != "" {
		c.Model = v
	}
}

func (c *ExtractionConfig) validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
