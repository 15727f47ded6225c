package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Client issues time-bounded signed URLs for stored objects.
type Client interface {
	SignURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
}

// HTTPClient implements Client against the object store's REST API with a
// service key bearer token.
type HTTPClient struct {
	baseURL    *url.URL
	serviceKey string
	bucket     string
	httpClient *http.Client
	logger     *slog.Logger
}

type signRequest struct {
	ExpiresIn int64 `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// NewHTTPClient creates an HTTP object store client with default timeout.
func NewHTTPClient(baseURL, serviceKey, bucket string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse object store url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("object store url must be absolute")
	}
	if bucket == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}
	return &HTTPClient{
		baseURL:    parsed,
		serviceKey: serviceKey,
		bucket:     bucket,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SignURL asks the store for a link to objectPath that expires after ttl.
// Expiry is enforced by the store, not by this client.
func (c *HTTPClient) SignURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(signRequest{ExpiresIn: int64(ttl.Seconds())})
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/object/sign/", c.bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("object store sign failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("object store error: %s", resp.Status)
	}

	var data signResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.SignedURL == "" {
		return "", fmt.Errorf("object store returned empty url")
	}

	// the store answers with a path relative to its own base
	signed, err := url.Parse(data.SignedURL)
	if err != nil {
		return "", err
	}
	return c.baseURL.ResolveReference(signed).String(), nil
}
