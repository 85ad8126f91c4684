// Package clients provides the client directory: the customers shipments are
// filed under. It includes the normalized-identity matching used to guard
// against filing a shipment under the wrong client.
package clients

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer that documents are filed under.
type Client struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	TaxID string    `json:"tax_id"`

	// LastDocumentAt is the creation time of the client's most recent
	// document, or nil when the client has none.
	LastDocumentAt *time.Time `json:"last_document_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new client.
type CreateCommand struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// UpdateCommand contains the fields that can be modified on an existing client.
type UpdateCommand struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}
