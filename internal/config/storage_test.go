package config_test

import (
	"testing"

	"github.com/freightdeck/freightdeck/internal/config"
)

func TestStorageConfig_Finalize_Defaults(t *testing.T) {
	cfg := &config.StorageConfig{}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.BasePath != ".data/blobs" {
		t.Errorf("BasePath = %q, want .data/blobs", cfg.BasePath)
	}

	if cfg.Bucket != "documents" {
		t.Errorf("Bucket = %q, want documents", cfg.Bucket)
	}

	if cfg.LegacyBucket != "fs" {
		t.Errorf("LegacyBucket = %q, want fs", cfg.LegacyBucket)
	}

	if cfg.MaxUploadSizeBytes() != 100*1000*1000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 100MB", cfg.MaxUploadSizeBytes())
	}
}

func TestStorageConfig_Finalize_ParsesUploadSize(t *testing.T) {
	tests := []struct {
		size      string
		wantBytes int64
	}{
		{"1MB", 1000 * 1000},
		{"512KB", 512 * 1000},
		{"2GB", 2 * 1000 * 1000 * 1000},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			cfg := &config.StorageConfig{MaxUploadSize: tt.size}

			if err := cfg.Finalize(); err != nil {
				t.Fatalf("Finalize() failed: %v", err)
			}

			if cfg.MaxUploadSizeBytes() != tt.wantBytes {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", cfg.MaxUploadSizeBytes(), tt.wantBytes)
			}
		})
	}
}

func TestStorageConfig_Finalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"bucket equals legacy bucket", config.StorageConfig{Bucket: "fs", LegacyBucket: "fs"}},
		{"invalid upload size", config.StorageConfig{MaxUploadSize: "lots"}},
		{"negative upload size", config.StorageConfig{MaxUploadSize: "-5MB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestStorageConfig_Merge(t *testing.T) {
	base := &config.StorageConfig{}
	if err := base.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	base.Merge(&config.StorageConfig{BasePath: "/var/lib/freightdeck", MaxUploadSize: "10MB"})

	if base.BasePath != "/var/lib/freightdeck" {
		t.Errorf("BasePath = %q, want /var/lib/freightdeck", base.BasePath)
	}

	if base.Bucket != "documents" {
		t.Errorf("Bucket = %q, want documents (unchanged)", base.Bucket)
	}

	if base.MaxUploadSizeBytes() != 10*1000*1000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 10MB", base.MaxUploadSizeBytes())
	}
}
