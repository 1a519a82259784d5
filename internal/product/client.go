package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Info is what the lookup yields for a recognized barcode. Missing fields
// fall back to "Unknown" so result screens always have something to show.
type Info struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Image    string `json:"image"`
	Quantity string `json:"quantity"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client looks up products in the public food-facts database by barcode.
// Results are never cached: every scan refetches.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

type lookupResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName   string `json:"product_name"`
		Brands        string `json:"brands"`
		ImageFrontURL string `json:"image_front_url"`
		Quantity      string `json:"quantity"`
	} `json:"product"`
}

// Lookup returns product info for a barcode, or (nil, nil) when the
// database has no entry. Only transport problems surface as errors; callers
// treat both the same way and render "no product info".
func (c *Client) Lookup(ctx context.Context, code string) (*Info, error) {
	url := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product lookup: status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}

	if body.Status != 1 {
		return nil, nil
	}

	info := &Info{
		Name:     body.Product.ProductName,
		Brand:    body.Product.Brands,
		Image:    body.Product.ImageFrontURL,
		Quantity: body.Product.Quantity,
	}
	if info.Name == "" {
		info.Name = "Unknown"
	}
	if info.Brand == "" {
		info.Brand = "Unknown"
	}
	if info.Quantity == "" {
		info.Quantity = "Unknown"
	}
	return info, nil
}
