package main

import (
	"github.com/freightdeck/freightdeck/internal/clients"
	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/diagnostics"
	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/freightdeck/freightdeck/internal/extraction"
	"github.com/freightdeck/freightdeck/internal/infrastructure"
	"github.com/freightdeck/freightdeck/internal/render"
)

type Domain struct {
	Clients     clients.System
	Documents   documents.System
	Diagnostics diagnostics.System
}

func NewDomain(infra *infrastructure.Infrastructure, cfg *config.Config) *Domain {
	db := infra.Database.Connection()

	clientSys := clients.New(db, infra.Logger, cfg.Pagination)
	store := documents.NewStore(db, infra.Logger, cfg.Pagination)

	manager := documents.NewManager(
		store,
		infra.Storage,
		extraction.New(&cfg.Extraction, infra.Logger),
		render.New(&cfg.Render, infra.Logger),
		clientSys,
		cfg.Storage.Bucket,
		infra.Logger,
	)

	return &Domain{
		Clients:   clientSys,
		Documents: manager,
		Diagnostics: diagnostics.New(
			store,
			manager,
			infra.Storage,
			clientSys,
			cfg.Storage.Bucket,
			cfg.Storage.LegacyBucket,
			infra.Logger,
		),
	}
}
