package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	// EnvRenderBaseURL overrides the document render service base URL.
	EnvRenderBaseURL = "RENDER_BASE_URL"

	// EnvRenderTimeout overrides the render request timeout.
	EnvRenderTimeout = "RENDER_TIMEOUT"
)

// RenderConfig contains configuration for the derivative document render service.
type RenderConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *RenderConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the render configuration.
func (c *RenderConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *RenderConfig) Merge(overlay *RenderConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *RenderConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:9091"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *RenderConfig) loadEnv() {
	if v := os.Getenv(EnvRenderBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvRenderTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *RenderConfig) validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
