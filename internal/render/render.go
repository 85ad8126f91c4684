// Package render defines the adapter contract for the external document
// render service, which produces derivative paperwork PDFs, plus an HTTP
// client implementation.
package render

import (
	"context"
	"errors"
)

// Render errors.
var (
	// ErrRenderFailed indicates the render call itself failed.
	ErrRenderFailed = errors.New("render failed")

	// ErrInvalidOutput indicates the service responded but the returned
	// bytes are not a usable PDF.
	ErrInvalidOutput = errors.New("render output is not a valid PDF")
)

// Request describes a render job. Source is base64-encoded on the wire.
type Request struct {
	DocType string `json:"doc_type"`
	Payload any    `json:"payload"`
	Source  []byte `json:"source,omitempty"`
}

// Renderer produces a derivative document PDF from a structured payload.
// Source carries the current file bytes for renders that overlay or reuse
// the existing document.
type Renderer interface {
	Render(ctx context.Context, docType string, payload any, source []byte) ([]byte, error)
}
