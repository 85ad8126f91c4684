package documents

import (
	"context"
	"time"

	"github.com/freightdeck/freightdeck/pkg/pagination"
	"github.com/google/uuid"
)

// Store defines the shipment document record store. The lifecycle manager
// and the diagnostics service operate against this interface; the Postgres
// implementation lives in repository.go.
type Store interface {
	Insert(ctx context.Context, doc *Document) (*Document, error)

	// Update persists the mutable columns of an existing record and
	// advances UpdatedAt. ID, ClientID, Type, and CreatedAt never change.
	Update(ctx context.Context, doc *Document) (*Document, error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindBol looks up a client's BOL by number. Returns ErrNotFound
	// when no such BOL exists.
	FindBol(ctx context.Context, clientID uuid.UUID, bolNumber string) (*Document, error)

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)

	// ListAll returns every record; used by diagnostics scans.
	ListAll(ctx context.Context) ([]Document, error)

	// ListDerivatives returns the derivative documents linked to a BOL.
	ListDerivatives(ctx context.Context, bolID uuid.UUID) ([]Document, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// LastCreatedAt returns the most recent document creation time for
	// a client, or nil when the client has no documents.
	LastCreatedAt(ctx context.Context, clientID uuid.UUID) (*time.Time, error)
}
