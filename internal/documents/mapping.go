package documents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/freightdeck/freightdeck/pkg/query"
	"github.com/freightdeck/freightdeck/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("public", "shipment_documents", "d").
	Project("id", "Id").
	Project("client_id", "ClientId").
	Project("doc_type", "Type").
	Project("sub_type", "SubType").
	Project("file_id", "FileId").
	Project("file_name", "FileName").
	Project("related_bol_id", "RelatedBolId").
	Project("bol_number", "BolNumber").
	Project("bol_data", "BolData").
	Project("packing_list_data", "PackingListData").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	var bolData, plData []byte

	err := s.Scan(
		&d.ID,
		&d.ClientID,
		&d.Type,
		&d.SubType,
		&d.FileID,
		&d.FileName,
		&d.RelatedBolID,
		&d.BolNumber,
		&bolData,
		&plData,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}

	if payloadPresent(bolData) {
		d.BolData = &BolData{}
		if err := json.Unmarshal(bolData, d.BolData); err != nil {
			return d, fmt.Errorf("decode bol_data: %w", err)
		}
	}
	if payloadPresent(plData) {
		d.PackingListData = &PackingListData{}
		if err := json.Unmarshal(plData, d.PackingListData); err != nil {
			return d, fmt.Errorf("decode packing_list_data: %w", err)
		}
	}

	return d, nil
}

// payloadPresent reports whether a JSONB column holds an actual payload.
// A literal "null" counts as absent so it never decodes into an empty struct.
func payloadPresent(b []byte) bool {
	return len(b) > 0 && string(b) != "null"
}

// encodePayload marshals an optional payload for a JSONB column. A nil
// pointer encodes as SQL NULL, not the JSON literal null.
func encodePayload[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Filters contains optional criteria for filtering document queries.
type Filters struct {
	ClientID  *uuid.UUID
	Type      *Type
	BolNumber *string
}

// FiltersFromQuery extracts document filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("client_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.ClientID = &id
		}
	}

	if t := values.Get("type"); t != "" {
		dt := Type(t)
		f.Type = &dt
	}

	if n := values.Get("bol_number"); n != "" {
		f.BolNumber = &n
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.ClientID != nil {
		b.WhereEquals("ClientId", *f.ClientID)
	}
	if f.Type != nil {
		b.WhereEquals("Type", string(*f.Type))
	}
	b.WhereContains("BolNumber", f.BolNumber)
	return b
}
