package documents

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// Domain errors for shipment document operations.
var (
	ErrNotFound             = errors.New("document not found")
	ErrDuplicate            = errors.New("document already exists")
	ErrBolNotFound          = errors.New("related BOL not found")
	ErrFileNotFound         = errors.New("document file not found in blob store")
	ErrExtractionIncomplete = errors.New("extraction missing required fields")
	ErrFileTooLarge         = errors.New("file exceeds maximum upload size")
	ErrInvalidFile          = errors.New("invalid file")
	ErrValidation           = errors.New("invalid document")
)

// ClientMismatchError reports that extracted consignee identity matched a
// different client than the one the caller filed the document under.
// Nothing is written when this is returned.
type ClientMismatchError struct {
	SuspectedID   uuid.UUID
	SuspectedName string
}

func (e *ClientMismatchError) Error() string {
	return fmt.Sprintf("extracted consignee matches client %q (%s), not the requested client", e.SuspectedName, e.SuspectedID)
}

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var mismatch *ClientMismatchError
	if errors.As(err, &mismatch) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrFileNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrBolNotFound) || errors.Is(err, ErrExtractionIncomplete) ||
		errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
