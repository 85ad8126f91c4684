package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/freightdeck/freightdeck/internal/config"
)

type client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a renderer that calls the configured HTTP render service.
// Returned bytes are page-counted before they are accepted, so a FileID is
// never pointed at output the service mangled.
func New(cfg *config.RenderConfig, logger *slog.Logger) Renderer {
	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:  logger.With("system", "render"),
	}
}

func (c *client) Render(ctx context.Context, docType string, payload any, source []byte) ([]byte, error) {
	body, err := json.Marshal(Request{
		DocType: docType,
		Payload: payload,
		Source:  source,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrRenderFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("render request rejected", "status", resp.StatusCode, "body", string(msg))
		return nil, fmt.Errorf("%w: status %d", ErrRenderFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRenderFailed, err)
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	return data, nil
}

// Validate checks that data parses as a PDF with at least one page.
func Validate(data []byte) error {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if count < 1 {
		return fmt.Errorf("%w: zero pages", ErrInvalidOutput)
	}
	return nil
}
