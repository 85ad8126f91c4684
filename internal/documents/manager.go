package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/freightdeck/freightdeck/internal/clients"
	"github.com/freightdeck/freightdeck/internal/extraction"
	"github.com/freightdeck/freightdeck/internal/render"
	"github.com/freightdeck/freightdeck/internal/storage"
	"github.com/freightdeck/freightdeck/pkg/pagination"
	"github.com/google/uuid"
)

type manager struct {
	store     Store
	blobs     storage.System
	extractor extraction.Adapter
	renderer  render.Renderer
	directory clients.System
	bucket    string
	logger    *slog.Logger
}

// NewManager creates the document lifecycle manager. All new blobs are
// written under bucket.
func NewManager(
	store Store,
	blobs storage.System,
	extractor extraction.Adapter,
	renderer render.Renderer,
	directory clients.System,
	bucket string,
	logger *slog.Logger,
) System {
	return &manager{
		store:     store,
		blobs:     blobs,
		extractor: extractor,
		renderer:  renderer,
		directory: directory,
		bucket:    bucket,
		logger:    logger.With("system", "documents"),
	}
}

func (m *manager) Create(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if !cmd.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrValidation, cmd.Type)
	}
	if cmd.FileName == "" {
		return nil, fmt.Errorf("%w: file name required", ErrValidation)
	}

	if cmd.Type == TypeBOL {
		return m.createBol(ctx, cmd)
	}
	return m.createDerivative(ctx, cmd)
}

func (m *manager) createBol(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: file data required", ErrInvalidFile)
	}

	fields, err := m.extractor.Extract(ctx, cmd.Data, cmd.MimeType)
	if err != nil {
		return nil, err
	}
	if fields.BolNumber == "" || (fields.Consignee.Name == "" && fields.Consignee.TaxID == "") {
		return nil, ErrExtractionIncomplete
	}

	if err := m.checkClientIdentity(ctx, cmd.ClientID, fields); err != nil {
		return nil, err
	}

	existing, err := m.store.FindBol(ctx, cmd.ClientID, fields.BolNumber)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return m.replaceBol(ctx, existing, cmd, fields)
	}

	doc := &Document{
		ID:        uuid.New(),
		ClientID:  cmd.ClientID,
		Type:      TypeBOL,
		SubType:   cmd.SubType,
		FileName:  cmd.FileName,
		BolNumber: &fields.BolNumber,
		BolData:   bolDataFromFields(fields),
	}
	doc.FileID = m.buildFileID(doc.ID, cmd.FileName)

	if err := m.blobs.Store(ctx, doc.FileID, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	created, err := m.store.Insert(ctx, doc)
	if err != nil {
		if delErr := m.blobs.Delete(ctx, doc.FileID); delErr != nil {
			m.logger.Error("cleanup failed after insert error", "file_id", doc.FileID, "error", delErr)
		}
		return nil, err
	}

	m.touchClient(ctx, created)
	m.logger.Info("bol created", "id", created.ID, "bol_number", fields.BolNumber, "client_id", created.ClientID)
	return created, nil
}

// replaceBol handles a re-upload of an existing BOL number: the new blob
// is stored first, the record repointed, and only then the old blob removed.
// The new blob gets a fresh key so a same-name re-upload never overwrites
// the live blob before the record commits.
func (m *manager) replaceBol(ctx context.Context, existing *Document, cmd CreateCommand, fields *extraction.Fields) (*Document, error) {
	newFileID := m.buildFileID(uuid.New(), cmd.FileName)
	if err := m.blobs.Store(ctx, newFileID, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	oldFileID := existing.FileID
	existing.FileID = newFileID
	existing.FileName = cmd.FileName
	existing.SubType = cmd.SubType
	existing.BolData = bolDataFromFields(fields)

	updated, err := m.store.Update(ctx, existing)
	if err != nil {
		if delErr := m.blobs.Delete(ctx, newFileID); delErr != nil {
			m.logger.Error("cleanup failed after update error", "file_id", newFileID, "error", delErr)
		}
		return nil, err
	}

	if err := m.blobs.Delete(ctx, oldFileID); err != nil {
		m.logger.Warn("failed to delete replaced blob", "file_id", oldFileID, "error", err)
	}

	m.touchClient(ctx, updated)
	m.logger.Info("bol replaced", "id", updated.ID, "bol_number", fields.BolNumber)
	return updated, nil
}

func (m *manager) createDerivative(ctx context.Context, cmd CreateCommand) (*Document, error) {
	if cmd.RelatedBolID == nil {
		return nil, fmt.Errorf("%w: related_bol_id required for %s", ErrValidation, cmd.Type)
	}

	bol, err := m.store.Find(ctx, *cmd.RelatedBolID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBolNotFound
		}
		return nil, err
	}
	if bol.Type != TypeBOL {
		return nil, ErrBolNotFound
	}
	if bol.ClientID != cmd.ClientID {
		return nil, fmt.Errorf("%w: related BOL belongs to a different client", ErrValidation)
	}

	doc := &Document{
		ID:           uuid.New(),
		ClientID:     cmd.ClientID,
		Type:         cmd.Type,
		SubType:      cmd.SubType,
		FileName:     cmd.FileName,
		RelatedBolID: cmd.RelatedBolID,
	}
	if cmd.Type == TypePackingList {
		doc.PackingListData = packingListPayload(cmd.PackingListData, bol)
	}

	data := cmd.Data
	if len(data) == 0 {
		data, err = m.renderDerivative(ctx, doc, bol)
		if err != nil {
			return nil, err
		}
	}

	doc.FileID = m.buildFileID(doc.ID, cmd.FileName)
	if err := m.blobs.Store(ctx, doc.FileID, data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	created, err := m.store.Insert(ctx, doc)
	if err != nil {
		if delErr := m.blobs.Delete(ctx, doc.FileID); delErr != nil {
			m.logger.Error("cleanup failed after insert error", "file_id", doc.FileID, "error", delErr)
		}
		return nil, err
	}

	m.touchClient(ctx, created)
	m.logger.Info("derivative created", "id", created.ID, "type", created.Type, "bol_id", *cmd.RelatedBolID)
	return created, nil
}

func (m *manager) renderDerivative(ctx context.Context, doc *Document, bol *Document) ([]byte, error) {
	source, err := m.blobs.Retrieve(ctx, bol.FileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("retrieve bol file: %w", err)
	}

	var payload any
	if doc.PackingListData != nil {
		payload = doc.PackingListData
	} else {
		payload = bol.BolData
	}

	return m.renderer.Render(ctx, string(doc.Type), payload, source)
}

// Regenerate re-renders a derivative from its current payload. The new
// blob is written and the record repointed before the old blob is removed,
// so the document never references a missing file.
func (m *manager) Regenerate(ctx context.Context, id uuid.UUID) (*Document, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Type == TypeBOL {
		return nil, fmt.Errorf("%w: BOL documents are uploaded, not rendered", ErrValidation)
	}

	var source []byte
	if doc.RelatedBolID != nil {
		bol, err := m.store.Find(ctx, *doc.RelatedBolID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrBolNotFound
			}
			return nil, err
		}
		source, err = m.blobs.Retrieve(ctx, bol.FileID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrFileNotFound
			}
			return nil, fmt.Errorf("retrieve bol file: %w", err)
		}
	}

	var payload any
	if doc.PackingListData != nil {
		payload = doc.PackingListData
	} else {
		payload = doc.BolData
	}

	rendered, err := m.renderer.Render(ctx, string(doc.Type), payload, source)
	if err != nil {
		return nil, err
	}

	newFileID := m.buildFileID(uuid.New(), doc.FileName)
	if err := m.blobs.Store(ctx, newFileID, rendered); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	oldFileID := doc.FileID
	doc.FileID = newFileID

	updated, err := m.store.Update(ctx, doc)
	if err != nil {
		if delErr := m.blobs.Delete(ctx, newFileID); delErr != nil {
			m.logger.Error("cleanup failed after update error", "file_id", newFileID, "error", delErr)
		}
		return nil, err
	}

	if err := m.blobs.Delete(ctx, oldFileID); err != nil {
		m.logger.Warn("failed to delete replaced blob", "file_id", oldFileID, "error", err)
	}

	m.logger.Info("document regenerated", "id", updated.ID, "type", updated.Type)
	return updated, nil
}

// Delete removes a document. For BOLs the cascade deletes each derivative's
// blob and record best-effort before the BOL itself; removing the BOL
// record is the required final step. The owning client's last-document
// marker is recomputed afterwards.
func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if doc.Type == TypeBOL {
		derivatives, err := m.store.ListDerivatives(ctx, doc.ID)
		if err != nil {
			return err
		}
		for _, d := range derivatives {
			if err := m.blobs.Delete(ctx, d.FileID); err != nil {
				m.logger.Warn("failed to delete derivative blob", "id", d.ID, "file_id", d.FileID, "error", err)
			}
			if err := m.store.Delete(ctx, d.ID); err != nil && !errors.Is(err, ErrNotFound) {
				m.logger.Warn("failed to delete derivative record", "id", d.ID, "error", err)
			}
		}
	}

	if err := m.blobs.Delete(ctx, doc.FileID); err != nil {
		m.logger.Warn("failed to delete blob", "id", doc.ID, "file_id", doc.FileID, "error", err)
	}

	if err := m.store.Delete(ctx, doc.ID); err != nil {
		return err
	}

	last, err := m.store.LastCreatedAt(ctx, doc.ClientID)
	if err != nil {
		m.logger.Warn("failed to recompute last document time", "client_id", doc.ClientID, "error", err)
	} else if err := m.directory.SetLastDocument(ctx, doc.ClientID, last); err != nil {
		m.logger.Warn("failed to update client last document time", "client_id", doc.ClientID, "error", err)
	}

	m.logger.Info("document deleted", "id", id, "type", doc.Type)
	return nil
}

func (m *manager) ApplyUpdate(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Document, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cmd.apply(doc); err != nil {
		return nil, err
	}

	updated, err := m.store.Update(ctx, doc)
	if err != nil {
		return nil, err
	}

	m.logger.Info("document updated", "id", updated.ID, "type", updated.Type)
	return updated, nil
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	return m.store.Find(ctx, id)
}

func (m *manager) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	return m.store.List(ctx, page, filters)
}

func (m *manager) Download(ctx context.Context, id uuid.UUID) (*Document, []byte, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := m.blobs.Retrieve(ctx, doc.FileID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("retrieve file: %w", err)
	}

	return doc, data, nil
}

// checkClientIdentity compares the extracted consignee against the client
// directory. The best normalized match must be the requested client; a
// better match elsewhere means the shipment is about to be misfiled.
func (m *manager) checkClientIdentity(ctx context.Context, clientID uuid.UUID, fields *extraction.Fields) error {
	all, err := m.directory.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}

	best := clients.BestMatch(all, fields.Consignee.Name, fields.Consignee.TaxID)
	if best != nil && best.ID != clientID {
		return &ClientMismatchError{SuspectedID: best.ID, SuspectedName: best.Name}
	}
	return nil
}

func (m *manager) touchClient(ctx context.Context, doc *Document) {
	at := doc.CreatedAt
	if err := m.directory.SetLastDocument(ctx, doc.ClientID, &at); err != nil {
		m.logger.Warn("failed to update client last document time", "client_id", doc.ClientID, "error", err)
	}
}

func (m *manager) buildFileID(id uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/%s_%s", m.bucket, id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

func bolDataFromFields(fields *extraction.Fields) *BolData {
	data := &BolData{
		BolNumber:       strPtr(fields.BolNumber),
		DateOfIssue:     strPtr(fields.DateOfIssue),
		VesselName:      strPtr(fields.VesselName),
		PortOfLoading:   strPtr(fields.PortOfLoading),
		PortOfDischarge: strPtr(fields.PortOfDischarge),
		Consignee:       partyFromFields(fields.Consignee),
		Shipper:         partyFromFields(fields.Shipper),
	}

	for _, c := range fields.Containers {
		container := Container{
			Number:      strPtr(c.Number),
			Seal:        strPtr(c.Seal),
			Description: strPtr(c.Description),
		}
		if c.Packages > 0 {
			p := c.Packages
			container.Packages = &p
		}
		if c.WeightKg > 0 {
			w := c.WeightKg
			container.WeightKg = &w
		}
		data.Containers = append(data.Containers, container)
	}

	return data
}

func partyFromFields(p extraction.Party) *Party {
	if p.Name == "" && p.TaxID == "" {
		return nil
	}
	return &Party{
		Name:  strPtr(p.Name),
		TaxID: strPtr(p.TaxID),
	}
}

// packingListPayload seeds a generated packing list from the BOL's
// container lines when the caller supplied no payload of its own.
func packingListPayload(supplied *PackingListData, bol *Document) *PackingListData {
	if supplied != nil {
		return supplied
	}

	data := &PackingListData{PlNumber: bol.BolNumber}
	if bol.BolData != nil {
		data.Containers = bol.BolData.Containers
	}
	return data
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
