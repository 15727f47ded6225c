package gateway

import (
	"io"
	"log/slog"
	"testing"

	"github.com/miccroten/quoteportal/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{
		GatewayBaseURL:       "http://gateway.example.com",
		GatewayKeyID:         "key_test",
		GatewayKeySecret:     "secret",
		GatewayWebhookSecret: "whsec",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
	if client.KeyID() != "key_test" {
		t.Fatalf("unexpected key id %s", client.KeyID())
	}
}
