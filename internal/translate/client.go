package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Language is a translation language tag. The model supports the same trio
// the app shipped with.
type Language string

const (
	English  Language = "EN"
	Thai     Language = "TH"
	Japanese Language = "JA"
)

var supported = map[Language]bool{
	English:  true,
	Thai:     true,
	Japanese: true,
}

func Supported(l Language) bool {
	return supported[l]
}

// TTSLocale maps a translation language to the voice locale used to read
// results aloud.
func TTSLocale(l Language) string {
	switch l {
	case Thai:
		return "th-TH"
	case Japanese:
		return "ja-JP"
	default:
		return "en-US"
	}
}

// ErrSameLanguage is returned before any network call when source and
// target are equal.
var ErrSameLanguage = errors.New("source and target languages must differ")

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Request is one translation call.
type Request struct {
	Text   string
	Source Language
	Target Language
}

// Client talks to the local translation sidecar. Models are pulled lazily
// per language pair the first time that pair is requested.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	installed map[string]bool
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		installed:  make(map[string]bool),
	}
}

// Translate validates locally, downloads the pair's model if needed, and
// returns the translated text.
func (c *Client) Translate(ctx context.Context, req Request) (string, error) {
	if req.Source == req.Target {
		return "", ErrSameLanguage
	}
	if !Supported(req.Source) || !Supported(req.Target) {
		return "", fmt.Errorf("unsupported language pair %s->%s", req.Source, req.Target)
	}

	if err := c.downloadModelIfNeeded(ctx, req.Source, req.Target); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{
		"q":      req.Text,
		"source": string(req.Source),
		"target": string(req.Target),
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator returned status %d", resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	return result.TranslatedText, nil
}

// downloadModelIfNeeded pulls the model for a pair once per process. The
// lock spans the pull so concurrent first calls for the same pair do not
// race a duplicate download.
func (c *Client) downloadModelIfNeeded(ctx context.Context, source, target Language) error {
	pair := string(source) + "->" + string(target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.installed[pair] {
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"source": string(source),
		"target": string(target),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/pull", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model download: status %d", resp.StatusCode)
	}

	c.installed[pair] = true
	return nil
}

// IsAvailable probes the sidecar with a short deadline.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
