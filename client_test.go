package cogsearch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		apiKey   string
	}{
		{"empty endpoint", "", "key"},
		{"bad scheme", "ftp://search.example.net", "key"},
		{"not a url", "://nope", "key"},
		{"empty api key", "https://search.example.net", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.endpoint, tt.apiKey); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("https://search.example.net/", "key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.endpoint != "https://search.example.net" {
		t.Errorf("endpoint = %q, want trailing slash removed", c.endpoint)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	hc := &http.Client{}
	WithHTTPClient(hc).apply(cfg)
	if cfg.httpClient != hc {
		t.Error("expected http client to be set")
	}

	WithTimeout(5 * time.Second).apply(cfg)
	if cfg.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.timeout)
	}

	WithAPIVersion("2024-01-01").apply(cfg)
	if cfg.apiVersion != "2024-01-01" {
		t.Errorf("apiVersion = %q", cfg.apiVersion)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t)
	bad, err := New(client.endpoint, "wrong-key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = bad.Indexes().List(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected *APIError in chain")
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrAlreadyExists},
		{http.StatusInternalServerError, nil},
	}
	for _, tt := range tests {
		e := &APIError{StatusCode: tt.status, Message: "boom"}
		if got := e.Unwrap(); !errors.Is(got, tt.want) {
			t.Errorf("Unwrap(%d) = %v, want %v", tt.status, got, tt.want)
		}
		if e.Error() == "" {
			t.Error("empty error string")
		}
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("indexes.list", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("indexes.list", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected metrics to be registered")
	}

	found := false
	for _, f := range families {
		if f.GetName() == "cogsearch_client_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("cogsearch_client_operations_total not found")
	}
}

func TestObserver_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	// Second registration reuses the existing collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
