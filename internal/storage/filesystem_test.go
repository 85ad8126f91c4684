package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/lifecycle"
	"github.com/freightdeck/freightdeck/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStorage(t *testing.T) (storage.System, string) {
	t.Helper()

	dir, err := os.MkdirTemp("", "storage-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	sys, err := storage.New(&config.StorageConfig{BasePath: dir}, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := storage.New(&config.StorageConfig{BasePath: ""}, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStore_Retrieve_RoundTrip(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	key := "documents/abc_bol.pdf"
	data := []byte("file contents")

	if err := sys.Store(ctx, key, data); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	retrieved, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}

	if string(retrieved) != string(data) {
		t.Errorf("Retrieved data = %q, want %q", retrieved, data)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys, _ := newTestStorage(t)

	_, err := sys.Retrieve(context.Background(), "documents/missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestStore_InvalidKeys(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"traversal", "../outside.txt"},
		{"nested traversal", "documents/../../outside.txt"},
		{"absolute", "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sys.Store(ctx, tt.key, []byte("data"))
			if !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
		})
	}
}

func TestDelete_Idempotent(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	if err := sys.Delete(ctx, "documents/never-existed.pdf"); err != nil {
		t.Errorf("Delete() of missing key = %v, want nil", err)
	}
}

func TestDelete_RemovesBlob(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	key := "documents/abc_bol.pdf"
	if err := sys.Store(ctx, key, []byte("data")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	ok, err := sys.Validate(ctx, key)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if ok {
		t.Error("Validate() = true after Delete()")
	}
}

func TestValidate(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	key := "documents/abc_bol.pdf"
	if err := sys.Store(ctx, key, []byte("data")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	ok, err := sys.Validate(ctx, key)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !ok {
		t.Error("Validate() = false for stored key")
	}

	ok, err = sys.Validate(ctx, "documents/missing.pdf")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if ok {
		t.Error("Validate() = true for missing key")
	}
}

func TestList_ByPrefix(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	stored := []string{
		"documents/a_one.pdf",
		"documents/b_two.pdf",
		"fs/c_three.pdf",
	}
	for _, key := range stored {
		if err := sys.Store(ctx, key, []byte("data")); err != nil {
			t.Fatalf("Store(%q) failed: %v", key, err)
		}
	}

	keys, err := sys.List(ctx, "documents")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("List() returned %d keys, want 2: %v", len(keys), keys)
	}
	for _, want := range []string{"documents/a_one.pdf", "documents/b_two.pdf"} {
		if !slices.Contains(keys, want) {
			t.Errorf("List() missing key %q: %v", want, keys)
		}
	}
}

func TestList_MissingPrefix(t *testing.T) {
	sys, _ := newTestStorage(t)

	keys, err := sys.List(context.Background(), "empty-bucket")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List() returned %d keys for missing prefix, want 0", len(keys))
	}
}

func TestList_ExcludesTempFiles(t *testing.T) {
	sys, dir := newTestStorage(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "documents/a_one.pdf", []byte("data")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	// Simulate an interrupted write left behind on disk.
	leftover := filepath.Join(dir, "documents", "b_two.pdf.tmp")
	if err := os.WriteFile(leftover, []byte("partial"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	keys, err := sys.List(ctx, "documents")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(keys) != 1 || keys[0] != "documents/a_one.pdf" {
		t.Errorf("List() = %v, want [documents/a_one.pdf]", keys)
	}
}

func TestFindByName(t *testing.T) {
	sys, _ := newTestStorage(t)
	ctx := context.Background()

	stored := []string{
		"documents/1111_bol.pdf",
		"documents/2222_bol.pdf",
		"documents/3333_other.pdf",
		"fs/bol.pdf",
	}
	for _, key := range stored {
		if err := sys.Store(ctx, key, []byte("data")); err != nil {
			t.Fatalf("Store(%q) failed: %v", key, err)
		}
	}

	matches, err := sys.FindByName(ctx, "documents", "bol.pdf")
	if err != nil {
		t.Fatalf("FindByName() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("FindByName() returned %d matches, want 2: %v", len(matches), matches)
	}

	matches, err = sys.FindByName(ctx, "fs", "bol.pdf")
	if err != nil {
		t.Fatalf("FindByName() failed: %v", err)
	}
	if len(matches) != 1 || matches[0] != "fs/bol.pdf" {
		t.Errorf("FindByName(fs) = %v, want [fs/bol.pdf]", matches)
	}

	matches, err = sys.FindByName(ctx, "documents", "nope.pdf")
	if err != nil {
		t.Fatalf("FindByName() failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("FindByName() = %v, want empty", matches)
	}
}
