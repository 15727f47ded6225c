package repository

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// QuotationRepository describes persistence operations over quotations.
//
// Mutations are intentionally narrow: pricing, payment reconciliation, and
// fulfillment advancement are the only writes, and each one is conditioned on
// the status the caller last observed so racing writers surface ErrConflict
// instead of clobbering each other.
type QuotationRepository interface {
	Create(ctx context.Context, q model.Quotation) (*model.Quotation, error)
	GetByID(ctx context.Context, id string) (*model.Quotation, error)
	GetByFilePath(ctx context.Context, filePath string) (*model.Quotation, error)
	ListAll(ctx context.Context) ([]model.Quotation, error)
	ListByOwner(ctx context.Context, userID int64) ([]model.Quotation, error)

	// SetQuote writes config and status together if the current status is
	// still one of expected.
	SetQuote(ctx context.Context, id string, config model.QuoteConfig, status model.Status, expected []model.Status) error

	// MarkPaid records the reconciled payment if the current status is still
	// Quoted. PaymentID is written exactly once by this call.
	MarkPaid(ctx context.Context, id string, paymentID string) error

	// AdvanceStatus moves the quotation to next if the current status is
	// still expected.
	AdvanceStatus(ctx context.Context, id string, next, expected model.Status) error
}
