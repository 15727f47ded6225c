package objectstore

import (
	"io"
	"log/slog"
	"testing"

	"github.com/miccroten/quoteportal/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{
		ObjectStoreAddress: "http://store.example.com",
		ObjectStoreKey:     "service-key",
		ObjectStoreBucket:  "quotation-files",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
