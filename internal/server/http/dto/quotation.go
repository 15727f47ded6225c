package dto

import (
	"time"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// QuotationSubmitRequest describes a new quotation request payload. Config
// carries free-form specification fields; pricing fields in it are ignored.
type QuotationSubmitRequest struct {
	Type              string         `json:"type"`
	Config            map[string]any `json:"config"`
	AdditionalMessage *string        `json:"additional_message,omitempty"`
	UserName          *string        `json:"user_name,omitempty"`
	FilePath          *string        `json:"file_path,omitempty"`
}

// QuotationResponse is the wire form of one quotation.
type QuotationResponse struct {
	ID                string            `json:"id"`
	Type              string            `json:"type"`
	Status            string            `json:"status"`
	Config            model.QuoteConfig `json:"config"`
	AdditionalMessage *string           `json:"additional_message,omitempty"`
	UserName          *string           `json:"user_name,omitempty"`
	FilePath          *string           `json:"file_path,omitempty"`
	PaymentID         *string           `json:"payment_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// MyQuotationsResponse splits the owner view by lifecycle stage.
type MyQuotationsResponse struct {
	Active []QuotationResponse `json:"active"`
	Past   []QuotationResponse `json:"past"`
}

// SetQuoteRequest describes administrator pricing payload.
type SetQuoteRequest struct {
	Total    *float64 `json:"total"`
	Currency string   `json:"currency"`
	Status   string   `json:"status"`
}

// AdvanceRequest names the next fulfillment stage.
type AdvanceRequest struct {
	Status string `json:"status"`
}
