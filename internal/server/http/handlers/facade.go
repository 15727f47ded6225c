package handlers

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, fullName, phone string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseClaims(token string) (model.Claims, error)
}

// QuotationFacade encapsulates customer quotation operations exposed via HTTP.
type QuotationFacade interface {
	SubmitQuotation(ctx context.Context, claims model.Claims, in usecase.SubmitInput) (*model.Quotation, error)
	Quotation(ctx context.Context, claims model.Claims, id string) (*model.Quotation, error)
	MyQuotations(ctx context.Context, claims model.Claims) (*usecase.MyQuotations, error)
}

// AdminFacade covers staff operations: listing, pricing, fulfillment.
type AdminFacade interface {
	AllQuotations(ctx context.Context, claims model.Claims) ([]model.Quotation, error)
	SetQuote(ctx context.Context, claims model.Claims, id string, total float64, currency model.Currency, status model.Status) (*model.Quotation, error)
	AdvanceQuotation(ctx context.Context, claims model.Claims, id string, next model.Status) (*model.Quotation, error)
	ContactSubmissions(ctx context.Context, claims model.Claims) ([]model.ContactSubmission, error)
}

// PaymentFacade drives checkout initiation and completion.
type PaymentFacade interface {
	InitiateCheckout(ctx context.Context, claims model.Claims, quotationID string) (*model.CheckoutHandle, error)
	CompleteCheckout(ctx context.Context, quotationID, gatewayOrderID, paymentID, signature string) (*model.Quotation, error)
}

// FileFacade issues signed URLs scoped to the caller.
type FileFacade interface {
	SignedURL(ctx context.Context, claims model.Claims, objectPath string) (string, error)
}

// ContactFacade records public inquiries.
type ContactFacade interface {
	SubmitContact(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error)
}

// ProfileFacade reads and updates the caller's account context.
type ProfileFacade interface {
	AccountProfile(ctx context.Context, claims model.Claims) (*model.Account, *model.Profile, error)
	UpdateProfile(ctx context.Context, claims model.Claims, fullName, phone string) (*model.Profile, error)
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	AuthFacade
	QuotationFacade
	AdminFacade
	PaymentFacade
	FileFacade
	ContactFacade
	ProfileFacade
}
