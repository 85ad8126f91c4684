package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ClientSeeder populates the client directory with demo customers.
type ClientSeeder struct {
	file string
}

type seedClient struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

var defaultClients = []seedClient{
	{Name: "Pacific Crest Trading Co", TaxID: "94-2817365"},
	{Name: "Harbor Lane Imports", TaxID: "36-5102948"},
	{Name: "Meridian Freight Partners", TaxID: "82-4471206"},
	{Name: "Bluewater Provisions Ltd", TaxID: "61-7738450"},
}

func (s *ClientSeeder) Name() string { return "clients" }

func (s *ClientSeeder) Description() string {
	return "Seeds demo clients for local development"
}

// SetFile overrides the embedded seed data with an external JSON file.
func (s *ClientSeeder) SetFile(path string) {
	s.file = path
}

func (s *ClientSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	entries := defaultClients

	if s.file != "" {
		data, err := os.ReadFile(s.file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		entries = nil
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}
	}

	q := `INSERT INTO clients(id, name, tax_id)
		VALUES($1, $2, $3)
		ON CONFLICT (lower(name)) DO NOTHING`

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, q, uuid.New(), entry.Name, entry.TaxID); err != nil {
			return fmt.Errorf("insert client %q: %w", entry.Name, err)
		}
	}

	return nil
}
