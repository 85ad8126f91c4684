package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvStorageBasePath overrides the storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxUploadSize overrides the maximum accepted upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"

	// EnvStorageBucket overrides the canonical document bucket name.
	EnvStorageBucket = "STORAGE_BUCKET"

	// EnvStorageLegacyBucket overrides the legacy bucket name retained for
	// reads of files stored before the bucket consolidation.
	EnvStorageLegacyBucket = "STORAGE_LEGACY_BUCKET"
)

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// Bucket is the namespace all new documents are written under.
	Bucket string `toml:"bucket"`

	// LegacyBucket is consulted on reads when a file is missing from
	// Bucket. No new writes target it.
	LegacyBucket string `toml:"legacy_bucket"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload limit in bytes.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.LegacyBucket != "" {
		c.LegacyBucket = overlay.LegacyBucket
	}

	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.Bucket == "" {
		c.Bucket = "documents"
	}
	if c.LegacyBucket == "" {
		c.LegacyBucket = "fs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvStorageBucket); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv(EnvStorageLegacyBucket); v != "" {
		c.LegacyBucket = v
	}
}

func (c *StorageConfig) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket required")
	}
	if c.Bucket == c.LegacyBucket {
		return fmt.Errorf("bucket and legacy_bucket must differ")
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
