package documents

import (
	"context"

	"github.com/freightdeck/freightdeck/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the document lifecycle operations. The implementation
// coordinates the record store, the blob store, and the extraction and
// render adapters so that records and files stay consistent.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Regenerate(ctx context.Context, id uuid.UUID) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyUpdate(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)

	// Download returns the document record together with its file bytes.
	Download(ctx context.Context, id uuid.UUID) (*Document, []byte, error)
}
