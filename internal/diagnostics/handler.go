package diagnostics

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/freightdeck/freightdeck/pkg/handlers"
	"github.com/freightdeck/freightdeck/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for diagnostics operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a diagnostics handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "diagnostics"),
	}
}

// Routes returns the diagnostics endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/diagnostics",
		Tags:        []string{"Diagnostics"},
		Description: "Consistency scanning and repair",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/scan", Handler: h.Scan},
			{Method: "POST", Pattern: "/cleanup", Handler: h.Cleanup},
			{Method: "POST", Pattern: "/repair/{id}", Handler: h.Repair},
		},
	}
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	findings, err := h.sys.Scan(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if findings == nil {
		findings = []Finding{}
	}
	handlers.RespondJSON(w, http.StatusOK, findings)
}

func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.sys.Cleanup(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

type repairRequest struct {
	CandidateFileID string `json:"candidate_file_id"`
}

func (h *Handler) Repair(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req repairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Repair(r.Context(), id, req.CandidateFileID)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
