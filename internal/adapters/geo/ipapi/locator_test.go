package ipapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocator_Locate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/190.40.1.1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"lat": -12.0464,
			"lon": -77.0428,
			"city": "Lima",
			"regionName": "Lima Province",
			"country": "Peru"
		}`))
	}))
	defer ts.Close()

	loc, err := NewLocator(Config{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewLocator error: %v", err)
	}

	got, err := loc.Locate(context.Background(), "190.40.1.1")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if got.Lat != -12.0464 || got.Lng != -77.0428 {
		t.Fatalf("unexpected coords %+v", got)
	}
	if got.City != "Lima" || got.Region != "Lima Province" || got.Country != "Peru" {
		t.Fatalf("unexpected location %+v", got)
	}
}

func TestLocator_Locate_FailStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ip-api responde 200 con status=fail para IPs privadas/reservadas
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	}))
	defer ts.Close()

	loc, err := NewLocator(Config{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewLocator error: %v", err)
	}

	_, err = loc.Locate(context.Background(), "10.0.0.1")
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("expected ErrLookup, got %v", err)
	}
}

func TestLocator_Locate_EmptyIP(t *testing.T) {
	loc, err := NewLocator(Config{})
	if err != nil {
		t.Fatalf("NewLocator error: %v", err)
	}

	if _, err := loc.Locate(context.Background(), "   "); err != ErrEmptyIP {
		t.Fatalf("expected ErrEmptyIP, got %v", err)
	}
}
