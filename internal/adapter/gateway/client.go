package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// Client exposes the payment gateway operations checkout relies on.
// CapturedPayment returns an empty id when the gateway holds no captured
// payment for the order yet.
type Client interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency model.Currency, receipt string, notes map[string]string) (string, error)
	CapturedPayment(ctx context.Context, gatewayOrderID string) (string, error)
	VerifyCallback(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

// HTTPClient implements Client against the gateway's REST API with key-pair
// basic auth.
type HTTPClient struct {
	baseURL       *url.URL
	keyID         string
	keySecret     string
	webhookSecret string
	httpClient    *http.Client
	logger        *slog.Logger
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID string `json:"id"`
}

type paymentsResponse struct {
	Items []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"items"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, keyID, keySecret, webhookSecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:       parsed,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		logger:        logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateOrder opens a gateway order denominated in the currency's minor unit.
func (c *HTTPClient) CreateOrder(ctx context.Context, amountMinor int64, currency model.Currency, receipt string, notes map[string]string) (string, error) {
	payload, err := json.Marshal(orderRequest{
		Amount:   amountMinor,
		Currency: string(currency),
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway order creation failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}

	var data orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.ID == "" {
		return "", fmt.Errorf("gateway returned empty order id")
	}
	return data.ID, nil
}

// CapturedPayment asks the gateway for payments collected against an order.
func (c *HTTPClient) CapturedPayment(ctx context.Context, gatewayOrderID string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders/", gatewayOrderID, "/payments")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway payments query failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("gateway error: %s", resp.Status)
	}

	var data paymentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	for _, p := range data.Items {
		if p.Status == "captured" {
			return p.ID, nil
		}
	}
	return "", nil
}

// VerifyCallback checks the completion signature the gateway computes over
// "orderID|paymentID" with the shared webhook secret.
func (c *HTTPClient) VerifyCallback(gatewayOrderID, paymentID, signature string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// KeyID returns the public key identifier the gateway UI needs.
func (c *HTTPClient) KeyID() string {
	return c.keyID
}
