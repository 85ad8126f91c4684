package clients

import (
	"context"
	"time"

	"github.com/freightdeck/freightdeck/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the client directory operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Client], error)
	Find(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll returns every client; used by identity matching, which
	// scores the full directory.
	FindAll(ctx context.Context) ([]Client, error)

	Create(ctx context.Context, cmd CreateCommand) (*Client, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetLastDocument records the creation time of the client's most
	// recent document. A nil value clears it.
	SetLastDocument(ctx context.Context, id uuid.UUID, at *time.Time) error
}
