package documents

import "fmt"

// UpdateCommand is a single named field update. The set of commands is
// closed: each one knows which field it touches and which document types
// it applies to, so updates are validated at compile time instead of
// traversing caller-supplied field paths.
//
// An empty value persists as an explicit empty string, which remains
// distinguishable from a field that was never set.
type UpdateCommand interface {
	apply(doc *Document) error
}

func bolPayload(doc *Document) (*BolData, error) {
	if doc.Type != TypeBOL {
		return nil, fmt.Errorf("%w: %s update applies only to BOL documents", ErrValidation, doc.Type)
	}
	if doc.BolData == nil {
		doc.BolData = &BolData{}
	}
	return doc.BolData, nil
}

func plPayload(doc *Document) (*PackingListData, error) {
	if doc.Type != TypePackingList {
		return nil, fmt.Errorf("%w: %s update applies only to packing lists", ErrValidation, doc.Type)
	}
	if doc.PackingListData == nil {
		doc.PackingListData = &PackingListData{}
	}
	return doc.PackingListData, nil
}

// SetCarrierReference updates the carrier reference on a BOL.
type SetCarrierReference struct{ Value string }

func (c SetCarrierReference) apply(doc *Document) error {
	data, err := bolPayload(doc)
	if err != nil {
		return err
	}
	data.CarrierReference = &c.Value
	return nil
}

// SetBolDate updates the BOL date on a BOL.
type SetBolDate struct{ Value string }

func (c SetBolDate) apply(doc *Document) error {
	data, err := bolPayload(doc)
	if err != nil {
		return err
	}
	data.BolDate = &c.Value
	return nil
}

// SetPoNumber updates the purchase order number on a BOL.
type SetPoNumber struct{ Value string }

func (c SetPoNumber) apply(doc *Document) error {
	data, err := bolPayload(doc)
	if err != nil {
		return err
	}
	data.PoNumber = &c.Value
	return nil
}

// SetVesselName updates the vessel name on a BOL.
type SetVesselName struct{ Value string }

func (c SetVesselName) apply(doc *Document) error {
	data, err := bolPayload(doc)
	if err != nil {
		return err
	}
	data.VesselName = &c.Value
	return nil
}

// SetDateOfIssue updates the date of issue on a BOL.
type SetDateOfIssue struct{ Value string }

func (c SetDateOfIssue) apply(doc *Document) error {
	data, err := bolPayload(doc)
	if err != nil {
		return err
	}
	data.DateOfIssue = &c.Value
	return nil
}

// SetPlNotes updates the notes on a packing list.
type SetPlNotes struct{ Value string }

func (c SetPlNotes) apply(doc *Document) error {
	data, err := plPayload(doc)
	if err != nil {
		return err
	}
	data.Notes = &c.Value
	return nil
}

// ParseUpdateCommand maps a wire-level operation name to its command.
// Unknown operations return ErrValidation.
func ParseUpdateCommand(op, value string) (UpdateCommand, error) {
	switch op {
	case "set_carrier_reference":
		return SetCarrierReference{Value: value}, nil
	case "set_bol_date":
		return SetBolDate{Value: value}, nil
	case "set_po_number":
		return SetPoNumber{Value: value}, nil
	case "set_vessel_name":
		return SetVesselName{Value: value}, nil
	case "set_date_of_issue":
		return SetDateOfIssue{Value: value}, nil
	case "set_pl_notes":
		return SetPlNotes{Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: unknown update operation %q", ErrValidation, op)
	}
}
