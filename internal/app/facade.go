package app

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/usecase"
)

// PortalFacade aggregates the use cases behind a single surface consumed by
// the HTTP handlers and the checkout reconciler.
type PortalFacade struct {
	accounts   *usecase.AccountUseCase
	quotations *usecase.QuotationLifecycle
	pricing    *usecase.PricingEditor
	payments   *usecase.PaymentOrchestrator
	files      *usecase.FileAccessBroker
	contacts   *usecase.ContactUseCase

	sessionMaxAge time.Duration
}

func NewPortalFacade(
	accounts *usecase.AccountUseCase,
	quotations *usecase.QuotationLifecycle,
	pricing *usecase.PricingEditor,
	payments *usecase.PaymentOrchestrator,
	files *usecase.FileAccessBroker,
	contacts *usecase.ContactUseCase,
	sessionMaxAge time.Duration,
) *PortalFacade {
	return &PortalFacade{
		accounts:      accounts,
		quotations:    quotations,
		pricing:       pricing,
		payments:      payments,
		files:         files,
		contacts:      contacts,
		sessionMaxAge: sessionMaxAge,
	}
}

func (f *PortalFacade) Register(ctx context.Context, email, password, fullName, phone string) (string, error) {
	_, token, err := f.accounts.Register(ctx, email, password, fullName, phone)
	return token, err
}

func (f *PortalFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.accounts.Authenticate(ctx, email, password)
	return token, err
}

func (f *PortalFacade) ParseClaims(token string) (model.Claims, error) {
	return f.accounts.ParseClaims(token)
}

func (f *PortalFacade) SubmitQuotation(ctx context.Context, claims model.Claims, in usecase.SubmitInput) (*model.Quotation, error) {
	return f.quotations.Submit(ctx, claims, in)
}

func (f *PortalFacade) Quotation(ctx context.Context, claims model.Claims, id string) (*model.Quotation, error) {
	return f.quotations.Get(ctx, claims, id)
}

func (f *PortalFacade) MyQuotations(ctx context.Context, claims model.Claims) (*usecase.MyQuotations, error) {
	return f.quotations.ListMine(ctx, claims)
}

func (f *PortalFacade) AllQuotations(ctx context.Context, claims model.Claims) ([]model.Quotation, error) {
	return f.quotations.ListAll(ctx, claims)
}

func (f *PortalFacade) SetQuote(ctx context.Context, claims model.Claims, id string, total float64, currency model.Currency, status model.Status) (*model.Quotation, error) {
	return f.pricing.SetQuote(ctx, claims, id, total, currency, status)
}

func (f *PortalFacade) AdvanceQuotation(ctx context.Context, claims model.Claims, id string, next model.Status) (*model.Quotation, error) {
	return f.quotations.Advance(ctx, claims, id, next)
}

func (f *PortalFacade) ContactSubmissions(ctx context.Context, claims model.Claims) ([]model.ContactSubmission, error) {
	return f.contacts.ListAll(ctx, claims)
}

func (f *PortalFacade) InitiateCheckout(ctx context.Context, claims model.Claims, quotationID string) (*model.CheckoutHandle, error) {
	return f.payments.InitiateCheckout(ctx, claims, quotationID)
}

func (f *PortalFacade) CompleteCheckout(ctx context.Context, quotationID, gatewayOrderID, paymentID, signature string) (*model.Quotation, error) {
	return f.payments.CompleteCheckout(ctx, quotationID, gatewayOrderID, paymentID, signature)
}

func (f *PortalFacade) SignedURL(ctx context.Context, claims model.Claims, objectPath string) (string, error) {
	return f.files.IssueSignedURL(ctx, claims, objectPath)
}

func (f *PortalFacade) SubmitContact(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	return f.contacts.Submit(ctx, sub)
}

func (f *PortalFacade) AccountProfile(ctx context.Context, claims model.Claims) (*model.Account, *model.Profile, error) {
	if claims.UserID == 0 {
		return nil, nil, domainErrors.ErrUnauthorized
	}
	account, err := f.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, domainErrors.ErrUnauthorized
		}
		return nil, nil, err
	}
	profile, err := f.accounts.Profile(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}

func (f *PortalFacade) UpdateProfile(ctx context.Context, claims model.Claims, fullName, phone string) (*model.Profile, error) {
	return f.accounts.UpdateProfile(ctx, claims, fullName, phone)
}

func (f *PortalFacade) PendingCheckoutSessions(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	return f.payments.PendingSessions(ctx, limit)
}

func (f *PortalFacade) ReconcileCheckoutSession(ctx context.Context, session model.CheckoutSession) error {
	return f.payments.ReconcileSession(ctx, session, f.sessionMaxAge)
}
