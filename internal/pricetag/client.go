package pricetag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// Prediction is one detector hit. Coordinates are center-point plus size in
// the model's own pixel space, not the source image's.
type Prediction struct {
	Class      string  `json:"class"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Detection is the detector's full response.
type Detection struct {
	Image struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"image"`
	Predictions []Prediction `json:"predictions"`
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// DetectorClient posts JPEG bytes to the hosted price-tag detector.
type DetectorClient struct {
	httpClient *http.Client
	endpoint   string
}

func NewDetectorClient(cfg Config) *DetectorClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &DetectorClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
	}
}

// Detect uploads the image as a multipart "file" field and decodes the
// prediction list.
func (c *DetectorClient) Detect(ctx context.Context, jpegData []byte) (*Detection, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="image.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(jpegData); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detector request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector returned status %d", resp.StatusCode)
	}

	var det Detection
	if err := json.NewDecoder(resp.Body).Decode(&det); err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}
	return &det, nil
}

// IsAvailable probes the detector endpoint with a short deadline. Any HTTP
// response counts as reachable since the detect route only accepts POSTs.
func (c *DetectorClient) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}
