package storage

import (
	"context"

	"github.com/freightdeck/freightdeck/internal/lifecycle"
)

// System defines the storage operations interface for blob storage.
// Implementations handle the underlying storage mechanism (filesystem, cloud, etc.)
// while providing a consistent API for storing and retrieving binary data.
//
// Keys are slash-separated paths whose first segment is the bucket the
// blob lives in, e.g. "documents/3f2a_bol.pdf".
type System interface {
	// Store saves data at the specified key. If the key already exists,
	// its contents are overwritten. Parent directories are created as needed.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	// Returns ErrInvalidKey if the key is malformed.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	// Returns ErrInvalidKey if the key is malformed.
	Delete(ctx context.Context, key string) error

	// Validate checks if a key exists and is accessible.
	// Returns (true, nil) if the key exists and is readable.
	// Returns (false, nil) if the key does not exist.
	// Returns (false, error) for permission or system errors.
	Validate(ctx context.Context, key string) (bool, error)

	// List returns all keys under the specified prefix, in unspecified
	// order. A prefix of "" lists every key in the store.
	List(ctx context.Context, prefix string) ([]string, error)

	// FindByName returns the keys in bucket whose file name component
	// matches name, exactly or ignoring the unique prefix written ahead
	// of the original file name. Multiple keys can match a single name.
	FindByName(ctx context.Context, bucket, name string) ([]string, error)

	// Start registers lifecycle hooks with the coordinator.
	// For filesystem storage, this creates the base directory.
	Start(lc *lifecycle.Coordinator) error
}
