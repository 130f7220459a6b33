package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/curaflow/curaflow-go/keystore"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("health probe must not be authenticated")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"services": map[string]string{"api": "up", "db": "up"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, keystore.NewMemoryStore())
	status, err := client.Health(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if status.Status != "ok" || status.Services.API != "up" || status.Services.DB != "up" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestHealthTimeoutWinsRace(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, keystore.NewMemoryStore())
	start := time.Now()
	_, err := client.Health(context.Background(), 50*time.Millisecond)
	if KindOf(err) != KindNetwork {
		t.Fatalf("expected network-kind timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("bounded wait took %v", elapsed)
	}
}
