package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Chocolate Bar",
				"brands": "ACME",
				"image_front_url": "https://img.example.com/choc.jpg",
				"quantity": "100 g"
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	info, err := client.Lookup(context.Background(), "4901234567894")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if gotPath != "/api/v0/product/4901234567894.json" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if info.Name != "Chocolate Bar" || info.Brand != "ACME" || info.Quantity != "100 g" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestLookupMissingFieldsFallBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {}}`))
	}))
	defer srv.Close()

	info, err := NewClient(Config{BaseURL: srv.URL}).Lookup(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info.Name != "Unknown" || info.Brand != "Unknown" || info.Quantity != "Unknown" {
		t.Errorf("expected Unknown fallbacks, got %+v", info)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0}`))
	}))
	defer srv.Close()

	info, err := NewClient(Config{BaseURL: srv.URL}).Lookup(context.Background(), "99999999")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info for unknown product, got %+v", info)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).Lookup(context.Background(), "12345678")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
