package clients

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/freightdeck/freightdeck/pkg/pagination"
	"github.com/freightdeck/freightdeck/pkg/query"
	"github.com/freightdeck/freightdeck/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a client repository backed by the database.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "clients"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Client], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "TaxId")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClient)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Client, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	client, err := repository.QueryOne(ctx, r.db, q, args, scanClient)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &client, nil
}

func (r *repo) FindAll(ctx context.Context) ([]Client, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildList()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanClient)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Client, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	q := `INSERT INTO clients(id, name, tax_id)
		VALUES($1, $2, $3)
		RETURNING id, name, tax_id, last_document_at, created_at, updated_at`

	client, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Client, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), cmd.Name, cmd.TaxID}, scanClient)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client created", "id", client.ID, "name", client.Name)
	return &client, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Client, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	q := `UPDATE clients SET name = $1, tax_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, tax_id, last_document_at, created_at, updated_at`

	client, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Client, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.TaxID, id}, scanClient)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client updated", "id", client.ID, "name", client.Name)
	return &client, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM clients WHERE id = $1`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		err = repository.MapError(err, ErrNotFound, ErrDuplicate)
		if err == ErrNotFound {
			return nil
		}
		return err
	}

	r.logger.Info("client deleted", "id", id)
	return nil
}

func (r *repo) SetLastDocument(ctx context.Context, id uuid.UUID, at *time.Time) error {
	q := `UPDATE clients SET last_document_at = $1, updated_at = NOW() WHERE id = $2`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, at, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
