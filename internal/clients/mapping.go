package clients

import (
	"net/url"

	"github.com/freightdeck/freightdeck/pkg/query"
	"github.com/freightdeck/freightdeck/pkg/repository"
)

var projection = query.NewProjectionMap("public", "clients", "c").
	Project("id", "Id").
	Project("name", "Name").
	Project("tax_id", "TaxId").
	Project("last_document_at", "LastDocumentAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanClient(s repository.Scanner) (Client, error) {
	var c Client
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.TaxID,
		&c.LastDocumentAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Filters contains optional criteria for filtering client queries.
type Filters struct {
	Name  *string
	TaxID *string
}

// FiltersFromQuery extracts client filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if t := values.Get("tax_id"); t != "" {
		f.TaxID = &t
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Name", f.Name)
	if f.TaxID != nil {
		b.WhereEquals("TaxId", *f.TaxID)
	}
	return b
}
