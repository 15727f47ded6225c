package usecase

import (
	"context"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// QuotationLifecycle enforces status transitions and exposes listing views.
type QuotationLifecycle struct {
	quotations repository.QuotationRepository
}

// NewQuotationLifecycle constructs QuotationLifecycle.
func NewQuotationLifecycle(quotations repository.QuotationRepository) *QuotationLifecycle {
	return &QuotationLifecycle{quotations: quotations}
}

// SubmitInput carries a new quotation request.
type SubmitInput struct {
	Type              model.QuotationType
	Config            model.QuoteConfig
	AdditionalMessage *string
	UserName          *string
	FilePath          *string
}

// MyQuotations splits the owner view by lifecycle stage.
type MyQuotations struct {
	Active []model.Quotation
	Past   []model.Quotation
}

// Submit stores a new request in the Pending Review stage. Pricing fields are
// stripped from the submitted config; only an administrator sets them.
func (u *QuotationLifecycle) Submit(ctx context.Context, claims model.Claims, in SubmitInput) (*model.Quotation, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, domainErrors.ErrValidation
	}

	in.Config.Total = nil
	in.Config.Currency = nil

	q := model.Quotation{
		Type:              in.Type,
		Status:            model.StatusPendingReview,
		Config:            in.Config,
		AdditionalMessage: in.AdditionalMessage,
		UserID:            claims.UserID,
		UserName:          in.UserName,
		FilePath:          in.FilePath,
	}
	return u.quotations.Create(ctx, q)
}

// Get returns one quotation if the caller owns it or is an administrator.
func (u *QuotationLifecycle) Get(ctx context.Context, claims model.Claims, id string) (*model.Quotation, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return nil, err
	}
	q, err := u.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claims.Role != model.RoleAdmin && q.UserID != claims.UserID {
		return nil, domainErrors.ErrForbidden
	}
	return q, nil
}

// ListAll returns every quotation newest first.
func (u *QuotationLifecycle) ListAll(ctx context.Context, claims model.Claims) ([]model.Quotation, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.quotations.ListAll(ctx)
}

// ListMine returns the caller's quotations, newest first, split into those
// still awaiting pricing or payment and the rest.
func (u *QuotationLifecycle) ListMine(ctx context.Context, claims model.Claims) (*MyQuotations, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return nil, err
	}
	all, err := u.quotations.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	result := &MyQuotations{}
	for _, q := range all {
		if q.Status.Active() {
			result.Active = append(result.Active, q)
		} else {
			result.Past = append(result.Past, q)
		}
	}
	return result, nil
}

// Advance moves a quotation one fulfillment step forward. Pricing stages go
// through PricingEditor and the Quoted to Paid transition belongs to the
// payment path, so only Paid and later stages can be advanced here.
func (u *QuotationLifecycle) Advance(ctx context.Context, claims model.Claims, id string, next model.Status) (*model.Quotation, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, domainErrors.ErrValidation
	}

	q, err := u.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status.Rank() < model.StatusPaid.Rank() || next.Rank() != q.Status.Rank()+1 {
		return nil, domainErrors.ErrInvalidState
	}

	if err := u.quotations.AdvanceStatus(ctx, id, next, q.Status); err != nil {
		return nil, err
	}
	q.Status = next
	return q, nil
}
