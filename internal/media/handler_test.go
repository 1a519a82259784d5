package media

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, t.TempDir(), time.Hour)
	return NewHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func multipartUpload(t *testing.T, source string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if source != "" {
		writer.WriteField("source", source)
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write(file)
	}
	writer.Close()
	return &body, writer.FormDataContentType()
}

func doUpload(t *testing.T, h *Handler, source string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, source, file)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Upload(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestUpload(t *testing.T) {
	h := newTestHandler(t)

	rec := doUpload(t, h, "camera", jpegBytes(t, 100, 80))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"width":100`) {
		t.Errorf("response should carry probed width: %s", rec.Body.String())
	}
}

func TestUploadMissingFile(t *testing.T) {
	h := newTestHandler(t)

	// The error code depends on which acquisition path was used.
	rec := doUpload(t, h, "camera", nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "capture_failed") {
		t.Errorf("camera: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doUpload(t, h, "library", nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "no_selection") {
		t.Errorf("library: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUploadUndecodableImage(t *testing.T) {
	h := newTestHandler(t)

	rec := doUpload(t, h, "camera", []byte("not an image"))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "size_probe_failed") {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetHandlerMissingImage(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("img_missing")
	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
