package documents_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/freightdeck/freightdeck/pkg/pagination"
)

func newTestHandler(t *testing.T, maxUploadSize int64) (*documents.Handler, *fixture) {
	t.Helper()

	f := newFixture(t)
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	return documents.NewHandler(f.manager, testLogger(), cfg, maxUploadSize), f
}

func multipartUpload(t *testing.T, clientID string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("client_id", clientID); err != nil {
		t.Fatalf("WriteField() failed: %v", err)
	}
	if err := w.WriteField("type", "BOL"); err != nil {
		t.Fatalf("WriteField() failed: %v", err)
	}

	part, err := w.CreateFormFile("file", "bol.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() failed: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestUpload_MalformedMultipartBody(t *testing.T) {
	h, _ := newTestHandler(t, 1000*1000)

	req := httptest.NewRequest("POST", "/documents", strings.NewReader("this is not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpload_BodyExceedsLimit(t *testing.T) {
	h, f := newTestHandler(t, 256)

	body, contentType := multipartUpload(t, f.client.ID.String(), bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestUpload_CreatesBol(t *testing.T) {
	h, f := newTestHandler(t, 1000*1000)

	body, contentType := multipartUpload(t, f.client.ID.String(), []byte("bol bytes"))
	req := httptest.NewRequest("POST", "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	docs, _ := f.store.ListAll(req.Context())
	if len(docs) != 1 {
		t.Errorf("record store has %d records, want 1", len(docs))
	}
}
