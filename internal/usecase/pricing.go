package usecase

import (
	"context"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// PricingEditor applies administrator pricing decisions.
type PricingEditor struct {
	quotations repository.QuotationRepository
}

// NewPricingEditor constructs PricingEditor.
func NewPricingEditor(quotations repository.QuotationRepository) *PricingEditor {
	return &PricingEditor{quotations: quotations}
}

// SetQuote writes total, currency and status in a single conditional update
// so the customer never observes a priced quotation in an unreviewed status.
// The write is conditioned on the status the administrator last read; a
// racing writer surfaces ErrConflict.
func (u *PricingEditor) SetQuote(ctx context.Context, claims model.Claims, id string, total float64, currency model.Currency, status model.Status) (*model.Quotation, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}
	if total < 0 || !currency.Valid() {
		return nil, domainErrors.ErrValidation
	}
	if !status.Valid() {
		return nil, domainErrors.ErrValidation
	}
	if !status.Active() {
		// Paid and later stages are never entered through pricing.
		return nil, domainErrors.ErrInvalidState
	}

	q, err := u.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Status.Active() {
		return nil, domainErrors.ErrInvalidState
	}
	if status.Rank() < q.Status.Rank() {
		// no regression: a Quoted request never goes back to Pending Review
		return nil, domainErrors.ErrInvalidState
	}

	cfg := q.Config
	cfg.Total = &total
	cfg.Currency = &currency

	if err := u.quotations.SetQuote(ctx, id, cfg, status, []model.Status{q.Status}); err != nil {
		return nil, err
	}

	q.Config = cfg
	q.Status = status
	return q, nil
}
