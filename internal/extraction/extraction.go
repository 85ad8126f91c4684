// Package extraction defines the adapter contract for the external document
// extraction service, which turns raw BOL files into structured shipment
// fields, plus an HTTP client implementation.
package extraction

import (
	"context"
	"errors"
)

// ErrExtractionFailed indicates the extraction call itself failed.
// Incomplete results are not an adapter error; completeness is judged by
// the caller.
var ErrExtractionFailed = errors.New("extraction failed")

// Party identifies an extracted shipment party.
type Party struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// Container is an extracted container line item.
type Container struct {
	Number      string  `json:"number"`
	Seal        string  `json:"seal"`
	Description string  `json:"description"`
	Packages    int     `json:"packages"`
	WeightKg    float64 `json:"weight_kg"`
}

// Fields holds the shipment particulars extracted from a BOL file.
// Absent values are reported as empty strings.
type Fields struct {
	BolNumber       string      `json:"bol_number"`
	Consignee       Party       `json:"consignee"`
	Shipper         Party       `json:"shipper"`
	VesselName      string      `json:"vessel_name"`
	DateOfIssue     string      `json:"date_of_issue"`
	PortOfLoading   string      `json:"port_of_loading"`
	PortOfDischarge string      `json:"port_of_discharge"`
	Containers      []Container `json:"containers"`
}

// Adapter extracts structured fields from a raw document.
type Adapter interface {
	Extract(ctx context.Context, data []byte, mimeType string) (*Fields, error)
}
