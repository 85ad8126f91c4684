package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/freightdeck/freightdeck/internal/clients"
	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/freightdeck/freightdeck/internal/storage"
	"github.com/google/uuid"
)

// System defines the diagnostics operations.
type System interface {
	// Scan reports every consistency problem without changing anything.
	Scan(ctx context.Context) ([]Finding, error)

	// Cleanup applies the automatic fixes: removes orphaned blobs,
	// deduplicates BOLs (the most recent survives), and deletes orphaned
	// derivatives together with their blobs.
	Cleanup(ctx context.Context) (*CleanupReport, error)

	// Repair relinks a document whose FileID no longer resolves. The
	// caller-supplied candidate key is tried first, then a name search
	// of the canonical bucket, then the legacy bucket.
	Repair(ctx context.Context, id uuid.UUID, candidateFileID string) (*RepairResult, error)
}

type service struct {
	store        documents.Store
	lifecycle    documents.System
	blobs        storage.System
	directory    clients.System
	bucket       string
	legacyBucket string
	logger       *slog.Logger
}

// New creates the diagnostics service. The bucket names identify the
// canonical blob namespace and the legacy namespace kept for reads.
func New(
	store documents.Store,
	lifecycle documents.System,
	blobs storage.System,
	directory clients.System,
	bucket, legacyBucket string,
	logger *slog.Logger,
) System {
	return &service{
		store:        store,
		lifecycle:    lifecycle,
		blobs:        blobs,
		directory:    directory,
		bucket:       bucket,
		legacyBucket: legacyBucket,
		logger:       logger.With("system", "diagnostics"),
	}
}

func (s *service) Scan(ctx context.Context) ([]Finding, error) {
	docs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var findings []Finding
	findings = append(findings, s.scanDanglingFiles(ctx, docs)...)

	orphaned, err := s.scanOrphanedBlobs(ctx, docs)
	if err != nil {
		return nil, err
	}
	findings = append(findings, orphaned...)

	findings = append(findings, scanMissingFields(docs)...)

	danglingClients, err := s.scanDanglingClients(ctx, docs)
	if err != nil {
		return nil, err
	}
	findings = append(findings, danglingClients...)

	findings = append(findings, scanDuplicateBols(docs)...)
	findings = append(findings, scanOrphanedDerivatives(docs)...)

	return findings, nil
}

func (s *service) scanDanglingFiles(ctx context.Context, docs []documents.Document) []Finding {
	var findings []Finding
	for _, doc := range docs {
		ok, err := s.blobs.Validate(ctx, doc.FileID)
		if err != nil {
			s.logger.Warn("blob validation failed", "id", doc.ID, "file_id", doc.FileID, "error", err)
			continue
		}
		if !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Kind:     KindDanglingFile,
				Message:  fmt.Sprintf("document %s references missing file %s", doc.ID, doc.FileID),
				Details: map[string]any{
					"document_id": doc.ID,
					"file_id":     doc.FileID,
					"file_name":   doc.FileName,
				},
				Fixable: true,
			})
		}
	}
	return findings
}

func (s *service) scanOrphanedBlobs(ctx context.Context, docs []documents.Document) ([]Finding, error) {
	referenced := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		referenced[doc.FileID] = struct{}{}
	}

	keys, err := s.blobs.List(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	var findings []Finding
	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Kind:     KindOrphanedBlob,
			Message:  fmt.Sprintf("blob %s is not referenced by any document", key),
			Details:  map[string]any{"file_id": key},
			Fixable:  true,
		})
	}
	return findings, nil
}

func scanMissingFields(docs []documents.Document) []Finding {
	var findings []Finding
	for _, doc := range docs {
		if doc.Type != documents.TypeBOL {
			continue
		}
		if doc.BolData == nil || doc.BolData.DateOfIssue == nil {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Kind:     KindMissingField,
				Message:  fmt.Sprintf("BOL %s has no date of issue", doc.ID),
				Details: map[string]any{
					"document_id": doc.ID,
					"field":       "date_of_issue",
				},
				Fixable: false,
			})
		}
	}
	return findings
}

func (s *service) scanDanglingClients(ctx context.Context, docs []documents.Document) ([]Finding, error) {
	all, err := s.directory.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	known := make(map[uuid.UUID]struct{}, len(all))
	for _, c := range all {
		known[c.ID] = struct{}{}
	}

	var findings []Finding
	for _, doc := range docs {
		if _, ok := known[doc.ClientID]; !ok {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Kind:     KindDanglingClient,
				Message:  fmt.Sprintf("document %s belongs to unknown client %s", doc.ID, doc.ClientID),
				Details: map[string]any{
					"document_id": doc.ID,
					"client_id":   doc.ClientID,
				},
				Fixable: false,
			})
		}
	}
	return findings, nil
}

type bolKey struct {
	clientID  uuid.UUID
	bolNumber string
}

// duplicateBolGroups returns, per duplicated (client, BOL number) pair, the
// documents sorted most recent first.
func duplicateBolGroups(docs []documents.Document) map[bolKey][]documents.Document {
	groups := make(map[bolKey][]documents.Document)
	for _, doc := range docs {
		if doc.Type != documents.TypeBOL || doc.BolNumber == nil {
			continue
		}
		key := bolKey{clientID: doc.ClientID, bolNumber: *doc.BolNumber}
		groups[key] = append(groups[key], doc)
	}

	for key, group := range groups {
		if len(group) < 2 {
			delete(groups, key)
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		groups[key] = group
	}
	return groups
}

func scanDuplicateBols(docs []documents.Document) []Finding {
	var findings []Finding
	for key, group := range duplicateBolGroups(docs) {
		ids := make([]uuid.UUID, len(group))
		for i, doc := range group {
			ids[i] = doc.ID
		}
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Kind:     KindDuplicateBol,
			Message:  fmt.Sprintf("client %s has %d BOLs with number %s", key.clientID, len(group), key.bolNumber),
			Details: map[string]any{
				"client_id":    key.clientID,
				"bol_number":   key.bolNumber,
				"document_ids": ids,
			},
			Fixable: true,
		})
	}
	return findings
}

func orphanedDerivatives(docs []documents.Document) []documents.Document {
	bols := make(map[uuid.UUID]struct{})
	for _, doc := range docs {
		if doc.Type == documents.TypeBOL {
			bols[doc.ID] = struct{}{}
		}
	}

	var orphans []documents.Document
	for _, doc := range docs {
		if !doc.Type.Derivative() {
			continue
		}
		if doc.RelatedBolID == nil {
			orphans = append(orphans, doc)
			continue
		}
		if _, ok := bols[*doc.RelatedBolID]; !ok {
			orphans = append(orphans, doc)
		}
	}
	return orphans
}

func scanOrphanedDerivatives(docs []documents.Document) []Finding {
	var findings []Finding
	for _, doc := range orphanedDerivatives(docs) {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Kind:     KindOrphanedDerivative,
			Message:  fmt.Sprintf("%s %s has no resolvable BOL", doc.Type, doc.ID),
			Details: map[string]any{
				"document_id": doc.ID,
				"type":        doc.Type,
			},
			Fixable: true,
		})
	}
	return findings
}

func (s *service) Cleanup(ctx context.Context) (*CleanupReport, error) {
	docs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := &CleanupReport{}

	orphanedBlobs, err := s.scanOrphanedBlobs(ctx, docs)
	if err != nil {
		return nil, err
	}
	for _, finding := range orphanedBlobs {
		key := finding.Details["file_id"].(string)
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete orphaned blob", "file_id", key, "error", err)
			report.Failures++
			continue
		}
		report.OrphanedBlobsRemoved++
	}

	for _, group := range duplicateBolGroups(docs) {
		// Most recent first; everything after it is removed with its
		// derivatives and blobs.
		for _, doc := range group[1:] {
			if err := s.lifecycle.Delete(ctx, doc.ID); err != nil {
				s.logger.Warn("failed to delete duplicate bol", "id", doc.ID, "error", err)
				report.Failures++
				continue
			}
			report.DuplicateBolsRemoved++
		}
	}

	// Reload so derivatives removed by BOL cascades are not double-counted.
	docs, err = s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	for _, doc := range orphanedDerivatives(docs) {
		if err := s.lifecycle.Delete(ctx, doc.ID); err != nil {
			s.logger.Warn("failed to delete orphaned derivative", "id", doc.ID, "error", err)
			report.Failures++
			continue
		}
		report.OrphanedDerivativesRemoved++
	}

	s.logger.Info(
		"cleanup complete",
		"orphaned_blobs", report.OrphanedBlobsRemoved,
		"duplicate_bols", report.DuplicateBolsRemoved,
		"orphaned_derivatives", report.OrphanedDerivativesRemoved,
		"failures", report.Failures,
	)
	return report, nil
}

func (s *service) Repair(ctx context.Context, id uuid.UUID, candidateFileID string) (*RepairResult, error) {
	doc, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if ok, err := s.blobs.Validate(ctx, doc.FileID); err == nil && ok {
		return &RepairResult{Repaired: false, FileID: doc.FileID}, nil
	}

	if candidateFileID != "" {
		if ok, err := s.blobs.Validate(ctx, candidateFileID); err == nil && ok {
			return s.relink(ctx, doc, candidateFileID, "candidate")
		}
	}

	if key := s.searchBucket(ctx, s.bucket, doc.FileName); key != "" {
		return s.relink(ctx, doc, key, "bucket")
	}
	if key := s.searchBucket(ctx, s.legacyBucket, doc.FileName); key != "" {
		return s.relink(ctx, doc, key, "legacy")
	}

	return &RepairResult{Repaired: false}, nil
}

func (s *service) searchBucket(ctx context.Context, bucket, name string) string {
	matches, err := s.blobs.FindByName(ctx, bucket, name)
	if err != nil {
		s.logger.Warn("name search failed", "bucket", bucket, "name", name, "error", err)
		return ""
	}
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

func (s *service) relink(ctx context.Context, doc *documents.Document, fileID, source string) (*RepairResult, error) {
	doc.FileID = fileID
	if _, err := s.store.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("relink document: %w", err)
	}

	s.logger.Info("document repaired", "id", doc.ID, "file_id", fileID, "source", source)
	return &RepairResult{Repaired: true, FileID: fileID, Source: source}, nil
}
