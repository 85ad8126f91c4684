package documents

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

const documentColumns = `id, client_id, doc_type, sub_type, file_id, file_name,
	related_bol_id, bol_number, bol_data, packing_list_data, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewStore creates a document record store backed by the database.
func NewStore(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Store {
	return &repo{
		db:         db,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Insert(ctx context.Context, doc *Document) (*Document, error) {
	bolData, err := encodePayload(doc.BolData)
	if err != nil {
		return nil, fmt.Errorf("encode bol_data: %w", err)
	}
	plData, err := encodePayload(doc.PackingListData)
	if err != nil {
		return nil, fmt.Errorf("encode packing_list_data: %w", err)
	}

	q := fmt.Sprintf(`INSERT INTO shipment_documents(id, client_id, doc_type, sub_type, file_id, file_name, related_bol_id, bol_number, bol_data, packing_list_data)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, documentColumns)

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			doc.ID, doc.ClientID, string(doc.Type), doc.SubType, doc.FileID,
			doc.FileName, doc.RelatedBolID, doc.BolNumber, bolData, plData,
		}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &created, nil
}

func (r *repo) Update(ctx context.Context, doc *Document) (*Document, error) {
	bolData, err := encodePayload(doc.BolData)
	if err != nil {
		return nil, fmt.Errorf("encode bol_data: %w", err)
	}
	plData, err := encodePayload(doc.PackingListData)
	if err != nil {
		return nil, fmt.Errorf("encode packing_list_data: %w", err)
	}

	q := fmt.Sprintf(`UPDATE shipment_documents
		SET sub_type = $1, file_id = $2, file_name = $3, related_bol_id = $4,
			bol_number = $5, bol_data = $6, packing_list_data = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING %s`, documentColumns)

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			doc.SubType, doc.FileID, doc.FileName, doc.RelatedBolID,
			doc.BolNumber, bolData, plData, doc.ID,
		}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &updated, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) FindBol(ctx context.Context, clientID uuid.UUID, bolNumber string) (*Document, error) {
	bolType := string(TypeBOL)
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ClientId", clientID).
		WhereEquals("Type", bolType).
		WhereEquals("BolNumber", bolNumber).
		BuildList()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query bol: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FileName", "BolNumber")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListAll(ctx context.Context) ([]Document, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildList()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) ListDerivatives(ctx context.Context, bolID uuid.UUID) ([]Document, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("RelatedBolId", bolID).
		BuildList()

	docs, err := repository.QueryMany(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query derivatives: %w", err)
	}
	return docs, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM shipment_documents WHERE id = $1`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) LastCreatedAt(ctx context.Context, clientID uuid.UUID) (*time.Time, error) {
	q := `SELECT MAX(created_at) FROM shipment_documents WHERE client_id = $1`

	var last *time.Time
	if err := r.db.QueryRowContext(ctx, q, clientID).Scan(&last); err != nil {
		return nil, fmt.Errorf("query last document: %w", err)
	}
	return last, nil
}
