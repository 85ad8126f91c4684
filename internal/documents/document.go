// Package documents provides shipment document management: BOL upload with
// field extraction, derivative paperwork generation, and the lifecycle
// operations that keep records and blobs consistent.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of shipment document.
type Type string

// Document type constants.
const (
	TypeBOL           Type = "BOL"
	TypePackingList   Type = "PL"
	TypeCOO           Type = "COO"
	TypeInvoice       Type = "INVOICE"
	TypeExportInvoice Type = "INVOICE_EXPORT"
	TypeCOA           Type = "COA"
	TypeSED           Type = "SED"
	TypeDataSheet     Type = "DATA_SHEET"
	TypeSafetySheet   Type = "SAFETY_SHEET"
	TypeInsurance     Type = "INSURANCE"
)

// Valid reports whether the type is a known document type.
func (t Type) Valid() bool {
	switch t {
	case TypeBOL, TypePackingList, TypeCOO, TypeInvoice, TypeExportInvoice,
		TypeCOA, TypeSED, TypeDataSheet, TypeSafetySheet, TypeInsurance:
		return true
	default:
		return false
	}
}

// Derivative reports whether the type is paperwork derived from a BOL.
func (t Type) Derivative() bool {
	return t.Valid() && t != TypeBOL
}

// Party identifies a shipment party. Scalar fields are pointers so an
// explicit empty string is distinguishable from an absent value.
type Party struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Container is a single container line item on a BOL or packing list.
type Container struct {
	Number      *string  `json:"number,omitempty"`
	Seal        *string  `json:"seal,omitempty"`
	Description *string  `json:"description,omitempty"`
	Packages    *int     `json:"packages,omitempty"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
}

// BolData is the structured payload of a BOL document. Dates are carried
// as strings in the form the extraction service reports them.
type BolData struct {
	BolNumber        *string     `json:"bol_number,omitempty"`
	BolDate          *string     `json:"bol_date,omitempty"`
	DateOfIssue      *string     `json:"date_of_issue,omitempty"`
	CarrierReference *string     `json:"carrier_reference,omitempty"`
	PoNumber         *string     `json:"po_number,omitempty"`
	VesselName       *string     `json:"vessel_name,omitempty"`
	Consignee        *Party      `json:"consignee,omitempty"`
	Shipper          *Party      `json:"shipper,omitempty"`
	PortOfLoading    *string     `json:"port_of_loading,omitempty"`
	PortOfDischarge  *string     `json:"port_of_discharge,omitempty"`
	Containers       []Container `json:"containers,omitempty"`
}

// PackingListData is the structured payload of a packing list document.
type PackingListData struct {
	PlNumber   *string     `json:"pl_number,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	Containers []Container `json:"containers,omitempty"`
}

// Document represents a stored shipment document with metadata.
// Exactly one of BolData or PackingListData is populated, depending on Type.
type Document struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Type     Type      `json:"type"`
	SubType  *string   `json:"sub_type,omitempty"`

	// FileID is the blob storage key; it must always resolve in the
	// blob store.
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`

	// RelatedBolID links derivative paperwork to its BOL.
	RelatedBolID *uuid.UUID `json:"related_bol_id,omitempty"`

	// BolNumber is denormalized from BolData for BOL documents so the
	// per-client uniqueness constraint can be enforced by the store.
	BolNumber *string `json:"bol_number,omitempty"`

	BolData         *BolData         `json:"bol_data,omitempty"`
	PackingListData *PackingListData `json:"packing_list_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a new shipment document.
// Data holds the raw file bytes; for derivative types it may be empty, in
// which case the document is rendered from Payload.
type CreateCommand struct {
	ClientID     uuid.UUID
	Type         Type
	SubType      *string
	FileName     string
	MimeType     string
	Data         []byte
	RelatedBolID *uuid.UUID

	// PackingListData seeds the payload for generated packing lists.
	PackingListData *PackingListData
}
