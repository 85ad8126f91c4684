// Package database manages the PostgreSQL connection pool and schema
// migrations. The pool is opened through the pgx stdlib driver so that
// repositories work against database/sql.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/lifecycle"
)

// System defines the database operations interface.
type System interface {
	// Connection returns the underlying connection pool.
	Connection() *sql.DB

	// Start verifies connectivity, applies pending migrations, and
	// registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	db     *sql.DB
	cfg    *config.DatabaseConfig
	logger *slog.Logger
}

// New opens a connection pool from the database configuration.
// Connectivity is not verified until Start().
func New(cfg *config.DatabaseConfig, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.db
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system", "host", d.cfg.Host, "name", d.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := d.migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.db.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
