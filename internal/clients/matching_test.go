package clients_test

import (
	"testing"

	"github.com/freightdeck/freightdeck/internal/clients"
	"github.com/google/uuid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "ACME CORP", "acme corp"},
		{"punctuation stripped", "Acme, Corp.", "acme corp"},
		{"whitespace collapsed", "Acme    Corp", "acme corp"},
		{"mixed", "  ACME, Corp. (Intl.)  ", "acme corp intl"},
		{"empty", "", ""},
		{"only punctuation", "...", ""},
		{"tax id", "94-2817365", "94 2817365"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clients.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBestMatch(t *testing.T) {
	acme := clients.Client{ID: uuid.New(), Name: "Acme Corp", TaxID: "94-2817365"}
	other := clients.Client{ID: uuid.New(), Name: "Other Inc", TaxID: "36-5102948"}
	candidates := []clients.Client{acme, other}

	tests := []struct {
		name   string
		query  string
		taxID  string
		wantID *uuid.UUID
	}{
		{"exact name", "Acme Corp", "", &acme.ID},
		{"case and punctuation", "ACME, CORP.", "", &acme.ID},
		{"substring within ratio", "Acme Corp Ltd", "", &acme.ID},
		{"tax id wins", "Unrelated Name", "94-2817365", &acme.ID},
		{"no overlap", "Pacific Crest Trading", "", nil},
		{"short coincidental substring", "Inc", "", nil},
		{"empty identity", "", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clients.BestMatch(candidates, tt.query, tt.taxID)

			if tt.wantID == nil {
				if got != nil {
					t.Errorf("BestMatch(%q) = %v, want nil", tt.query, got.Name)
				}
				return
			}

			if got == nil {
				t.Fatalf("BestMatch(%q) = nil, want %v", tt.query, *tt.wantID)
			}
			if got.ID != *tt.wantID {
				t.Errorf("BestMatch(%q) = %v, want %v", tt.query, got.ID, *tt.wantID)
			}
		})
	}
}

func TestBestMatch_PrefersCloserName(t *testing.T) {
	closer := clients.Client{ID: uuid.New(), Name: "Harbor Lane Imports"}
	farther := clients.Client{ID: uuid.New(), Name: "Harbor Lane Imports and Exports International"}

	got := clients.BestMatch([]clients.Client{farther, closer}, "Harbor Lane Imports", "")
	if got == nil {
		t.Fatal("BestMatch() = nil, want a match")
	}
	if got.ID != closer.ID {
		t.Errorf("BestMatch() = %q, want %q", got.Name, closer.Name)
	}
}
