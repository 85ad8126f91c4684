package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/freightdeck/freightdeck/internal/config"
)

type client struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates an extraction adapter that calls the configured HTTP service.
// The request timeout comes from the extraction configuration; this is the
// one operation in the service with an explicit timeout policy.
func New(cfg *config.ExtractionConfig, logger *slog.Logger) Adapter {
	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:  logger.With("system", "extraction"),
	}
}

func (c *client) Extract(ctx context.Context, data []byte, mimeType string) (*Fields, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if err := mw.WriteField("mime_type", mimeType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	part, err := mw.CreateFormFile("file", "document")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("extraction request rejected", "status", resp.StatusCode, "body", string(msg))
		return nil, fmt.Errorf("%w: status %d", ErrExtractionFailed, resp.StatusCode)
	}

	var fields Fields
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExtractionFailed, err)
	}

	return &fields, nil
}
