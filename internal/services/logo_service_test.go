package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGuessDomain(t *testing.T) {
	tests := []struct {
		company string
		want    string
	}{
		{"Acme", "acme.com"},
		{"Acme Corp!", "acmecorp.com"},
		{"  Stark Industries  ", "starkindustries.com"},
		{"3M", "3m.com"},
		{"vercel", "vercel.com"},
		{"Café Müller", "cafmller.com"},
		{"Acme ١٢٣", "acme.com"}, // non-ASCII digits dropped
		{"!!!", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			if got := GuessDomain(tt.company); got != tt.want {
				t.Errorf("GuessDomain(%q) = %q, want %q", tt.company, got, tt.want)
			}
		})
	}
}

func TestClearbitResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD probe, got %s", r.Method)
		}
		if r.URL.Path == "/acme.com" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := &ClearbitLogoResolver{Endpoint: srv.URL, HTTPClient: srv.Client()}

	url, found := resolver.Resolve(context.Background(), "Acme")
	if !found {
		t.Fatal("expected a logo for acme.com")
	}
	if url != srv.URL+"/acme.com" {
		t.Errorf("url = %q", url)
	}

	if _, found := resolver.Resolve(context.Background(), "No Such Company"); found {
		t.Error("404 probe should report not found")
	}

	if _, found := resolver.Resolve(context.Background(), "!!!"); found {
		t.Error("unusable name should short-circuit to not found")
	}
}

func TestClearbitResolveNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // probe hits a dead server

	resolver := &ClearbitLogoResolver{Endpoint: srv.URL, HTTPClient: &http.Client{}}
	if _, found := resolver.Resolve(context.Background(), "Acme"); found {
		t.Error("network failure should report not found")
	}
}
