package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientEmbed(t *testing.T) {
	want := []float32{0.1, -0.2, 0.3}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Texto != "hola" {
			t.Errorf("texto = %q", req.Texto)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(embedResponse{Embedding: want}); err != nil {
			t.Fatal(err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL}, nil)
	got, err := client.Embed(context.Background(), "hola")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d dims, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dim %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClientEmbedBareArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`[0.5, 0.25]`)); err != nil {
			t.Fatal(err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL}, nil)
	got, err := client.Embed(context.Background(), "hola")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 2 || got[0] != 0.5 {
		t.Errorf("got = %v", got)
	}
}

func TestClientEmbedNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL}, nil)
	if _, err := client.Embed(context.Background(), "hola"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestNoopEmbed(t *testing.T) {
	got, err := Noop{}.Embed(context.Background(), "cualquier cosa")
	if err != nil {
		t.Fatalf("Noop.Embed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
