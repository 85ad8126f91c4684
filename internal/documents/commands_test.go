package documents_test

import (
	"context"
	"errors"
	"testing"

	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/google/uuid"
)

func TestParseUpdateCommand(t *testing.T) {
	tests := []struct {
		op   string
		want documents.UpdateCommand
	}{
		{"set_carrier_reference", documents.SetCarrierReference{Value: "v"}},
		{"set_bol_date", documents.SetBolDate{Value: "v"}},
		{"set_po_number", documents.SetPoNumber{Value: "v"}},
		{"set_vessel_name", documents.SetVesselName{Value: "v"}},
		{"set_date_of_issue", documents.SetDateOfIssue{Value: "v"}},
		{"set_pl_notes", documents.SetPlNotes{Value: "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := documents.ParseUpdateCommand(tt.op, "v")
			if err != nil {
				t.Fatalf("ParseUpdateCommand(%q) failed: %v", tt.op, err)
			}
			if got != tt.want {
				t.Errorf("ParseUpdateCommand(%q) = %#v, want %#v", tt.op, got, tt.want)
			}
		})
	}
}

func TestParseUpdateCommand_Unknown(t *testing.T) {
	for _, op := range []string{"", "set_bol_number", "bol_data.carrier_reference"} {
		if _, err := documents.ParseUpdateCommand(op, "v"); !errors.Is(err, documents.ErrValidation) {
			t.Errorf("ParseUpdateCommand(%q) error = %v, want ErrValidation", op, err)
		}
	}
}

func TestUpdateCommands_TypeChecks(t *testing.T) {
	f := newFixture(t)
	bol := uploadBol(t, f, []byte("bol bytes"))
	pl := createDerivative(t, f, bol.ID, documents.TypePackingList)

	tests := []struct {
		name  string
		docID uuid.UUID
		cmd   documents.UpdateCommand
		ok    bool
	}{
		{"carrier reference on bol", bol.ID, documents.SetCarrierReference{Value: "MAEU-9"}, true},
		{"vessel name on bol", bol.ID, documents.SetVesselName{Value: "MV Horizon"}, true},
		{"pl notes on pl", pl.ID, documents.SetPlNotes{Value: "fragile"}, true},
		{"pl notes on bol", bol.ID, documents.SetPlNotes{Value: "fragile"}, false},
		{"carrier reference on pl", pl.ID, documents.SetCarrierReference{Value: "MAEU-9"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.manager.ApplyUpdate(context.Background(), tt.docID, tt.cmd)
			if tt.ok && err != nil {
				t.Errorf("ApplyUpdate() failed: %v", err)
			}
			if !tt.ok && !errors.Is(err, documents.ErrValidation) {
				t.Errorf("ApplyUpdate() error = %v, want ErrValidation", err)
			}
		})
	}
}
