package translate

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func doTranslate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Translate(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestHandlerTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/pull":
			w.WriteHeader(http.StatusOK)
		case "/translate":
			json.NewEncoder(w).Encode(map[string]string{"translatedText": "สวัสดี"})
		}
	}))
	defer srv.Close()

	h := NewHandler(NewClient(Config{BaseURL: srv.URL}), slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := doTranslate(t, h, `{"text":"hello","source":"EN","target":"TH"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp translateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.TranslatedText != "สวัสดี" {
		t.Errorf("translated = %q", resp.TranslatedText)
	}
	if resp.TTSLocale != "th-TH" {
		t.Errorf("tts locale = %q", resp.TTSLocale)
	}
}

func TestHandlerValidation(t *testing.T) {
	h := NewHandler(NewClient(Config{BaseURL: "http://unused"}), slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{name: "empty text", body: `{"text":" ","source":"EN","target":"TH"}`, code: "empty_text", message: "Please enter text to translate"},
		{name: "same language", body: `{"text":"hi","source":"EN","target":"EN"}`, code: "same_language", message: "Please choose different source and target languages"},
		{name: "unsupported", body: `{"text":"hi","source":"EN","target":"DE"}`, code: "unsupported_language", message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doTranslate(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.code) {
				t.Errorf("body missing code %q: %s", tt.code, rec.Body.String())
			}
			if tt.message != "" && !strings.Contains(rec.Body.String(), tt.message) {
				t.Errorf("body missing message %q: %s", tt.message, rec.Body.String())
			}
		})
	}
}

func TestHandlerUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	h := NewHandler(NewClient(Config{BaseURL: srv.URL}), slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := doTranslate(t, h, `{"text":"hello","source":"EN","target":"TH"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
