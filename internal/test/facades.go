package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/usecase"
)

// QuotationFacadeStub provides controllable behaviour for quotation endpoints.
type QuotationFacadeStub struct {
	SubmitFn func(context.Context, model.Claims, usecase.SubmitInput) (*model.Quotation, error)
	GetFn    func(context.Context, model.Claims, string) (*model.Quotation, error)
	MineFn   func(context.Context, model.Claims) (*usecase.MyQuotations, error)
}

// SubmitQuotation delegates to the override or returns a pending quotation.
func (s QuotationFacadeStub) SubmitQuotation(ctx context.Context, claims model.Claims, in usecase.SubmitInput) (*model.Quotation, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, claims, in)
	}
	return &model.Quotation{ID: "q-1", Type: in.Type, Status: model.StatusPendingReview, UserID: claims.UserID}, nil
}

// Quotation returns the configured quotation for given id.
func (s QuotationFacadeStub) Quotation(ctx context.Context, claims model.Claims, id string) (*model.Quotation, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, claims, id)
	}
	return &model.Quotation{ID: id, Status: model.StatusPendingReview, UserID: claims.UserID}, nil
}

// MyQuotations returns the configured owner view.
func (s QuotationFacadeStub) MyQuotations(ctx context.Context, claims model.Claims) (*usecase.MyQuotations, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, claims)
	}
	return &usecase.MyQuotations{}, nil
}

// AdminFacadeStub simulates staff operations.
type AdminFacadeStub struct {
	ListFn     func(context.Context, model.Claims) ([]model.Quotation, error)
	SetQuoteFn func(context.Context, model.Claims, string, float64, model.Currency, model.Status) (*model.Quotation, error)
	AdvanceFn  func(context.Context, model.Claims, string, model.Status) (*model.Quotation, error)
	ContactsFn func(context.Context, model.Claims) ([]model.ContactSubmission, error)
}

// AllQuotations returns the configured listing.
func (s AdminFacadeStub) AllQuotations(ctx context.Context, claims model.Claims) ([]model.Quotation, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, claims)
	}
	return []model.Quotation{{ID: "q-1"}}, nil
}

// SetQuote executes the configured pricing handler.
func (s AdminFacadeStub) SetQuote(ctx context.Context, claims model.Claims, id string, total float64, currency model.Currency, status model.Status) (*model.Quotation, error) {
	if s.SetQuoteFn != nil {
		return s.SetQuoteFn(ctx, claims, id, total, currency, status)
	}
	return &model.Quotation{ID: id, Status: status, Config: model.QuoteConfig{Total: &total, Currency: &currency}}, nil
}

// AdvanceQuotation executes the configured fulfillment handler.
func (s AdminFacadeStub) AdvanceQuotation(ctx context.Context, claims model.Claims, id string, next model.Status) (*model.Quotation, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, claims, id, next)
	}
	return &model.Quotation{ID: id, Status: next}, nil
}

// ContactSubmissions returns the configured inquiry list.
func (s AdminFacadeStub) ContactSubmissions(ctx context.Context, claims model.Claims) ([]model.ContactSubmission, error) {
	if s.ContactsFn != nil {
		return s.ContactsFn(ctx, claims)
	}
	return []model.ContactSubmission{{ID: 1}}, nil
}

// PaymentFacadeStub simulates checkout operations.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, model.Claims, string) (*model.CheckoutHandle, error)
	CompleteFn func(context.Context, string, string, string, string) (*model.Quotation, error)
}

// InitiateCheckout delegates to the override or returns a default handle.
func (s PaymentFacadeStub) InitiateCheckout(ctx context.Context, claims model.Claims, quotationID string) (*model.CheckoutHandle, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, claims, quotationID)
	}
	return &model.CheckoutHandle{GatewayOrderID: "order-1", KeyID: "key", AmountMinor: 100, Currency: model.CurrencyUSD}, nil
}

// CompleteCheckout delegates to the override or reports the quotation paid.
func (s PaymentFacadeStub) CompleteCheckout(ctx context.Context, quotationID, gatewayOrderID, paymentID, signature string) (*model.Quotation, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, quotationID, gatewayOrderID, paymentID, signature)
	}
	return &model.Quotation{ID: quotationID, Status: model.StatusPaid, PaymentID: &paymentID}, nil
}

// FileFacadeStub issues signed URLs for tests.
type FileFacadeStub struct {
	SignedURLFn func(context.Context, model.Claims, string) (string, error)
}

// SignedURL returns a canned URL unless overridden.
func (s FileFacadeStub) SignedURL(ctx context.Context, claims model.Claims, objectPath string) (string, error) {
	if s.SignedURLFn != nil {
		return s.SignedURLFn(ctx, claims, objectPath)
	}
	return "https://files.example.com/signed/" + objectPath, nil
}

// ContactFacadeStub records public inquiries for tests.
type ContactFacadeStub struct {
	SubmitFn func(context.Context, model.ContactSubmission) (*model.ContactSubmission, error)
}

// SubmitContact delegates to the override or echoes the submission back.
func (s ContactFacadeStub) SubmitContact(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sub)
	}
	stored := sub
	stored.ID = 1
	return &stored, nil
}

// ProfileFacadeStub simulates profile reads and updates.
type ProfileFacadeStub struct {
	AccountProfileFn func(context.Context, model.Claims) (*model.Account, *model.Profile, error)
	UpdateProfileFn  func(context.Context, model.Claims, string, string) (*model.Profile, error)
}

// AccountProfile returns configured account context.
func (s ProfileFacadeStub) AccountProfile(ctx context.Context, claims model.Claims) (*model.Account, *model.Profile, error) {
	if s.AccountProfileFn != nil {
		return s.AccountProfileFn(ctx, claims)
	}
	return &model.Account{ID: claims.UserID, Email: "user@example.com", Role: claims.Role},
		&model.Profile{UserID: claims.UserID}, nil
}

// UpdateProfile executes the configured update handler.
func (s ProfileFacadeStub) UpdateProfile(ctx context.Context, claims model.Claims, fullName, phone string) (*model.Profile, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, claims, fullName, phone)
	}
	return &model.Profile{UserID: claims.UserID, FullName: &fullName, Phone: &phone}, nil
}

// PortalFacadeStub aggregates facade dependencies for HTTP layer tests.
type PortalFacadeStub struct {
	AuthFacadeStub
	QuotationFacadeStub
	AdminFacadeStub
	PaymentFacadeStub
	FileFacadeStub
	ContactFacadeStub
	ProfileFacadeStub
}

// WorkerFacadeStub mimics reconciler interactions with the portal facade.
type WorkerFacadeStub struct {
	Sessions    [][]model.CheckoutSession
	SessionsFn  func(context.Context, int) ([]model.CheckoutSession, error)
	ReconcileFn func(context.Context, model.CheckoutSession) error
	Reconciled  []model.CheckoutSession

	mu                sync.Mutex
	sessionsCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingCheckoutSessions returns batches from the configured queue.
func (s *WorkerFacadeStub) PendingCheckoutSessions(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	if s.SessionsFn != nil {
		return s.SessionsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.sessionsCallCount, 1)
	if int(call) <= len(s.Sessions) {
		return s.Sessions[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcileCheckoutSession records reconciliation requests.
func (s *WorkerFacadeStub) ReconcileCheckoutSession(ctx context.Context, session model.CheckoutSession) error {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, session)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciled = append(s.Reconciled, session)
	return nil
}

// GatewayStub answers payment gateway calls for tests.
type GatewayStub struct {
	CreateOrderFn     func(context.Context, int64, model.Currency, string, map[string]string) (string, error)
	CapturedPaymentFn func(context.Context, string) (string, error)
	VerifyFn          func(string, string, string) bool
	KeyIDVal          string
}

// CreateOrder returns a deterministic gateway order id.
func (s GatewayStub) CreateOrder(ctx context.Context, amountMinor int64, currency model.Currency, receipt string, notes map[string]string) (string, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, amountMinor, currency, receipt, notes)
	}
	return "order-1", nil
}

// CapturedPayment reports the configured captured payment id.
func (s GatewayStub) CapturedPayment(ctx context.Context, gatewayOrderID string) (string, error) {
	if s.CapturedPaymentFn != nil {
		return s.CapturedPaymentFn(ctx, gatewayOrderID)
	}
	return "", nil
}

// VerifyCallback accepts every signature unless overridden.
func (s GatewayStub) VerifyCallback(orderID, paymentID, signature string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(orderID, paymentID, signature)
	}
	return true
}

// KeyID returns the configured public gateway key.
func (s GatewayStub) KeyID() string {
	if s.KeyIDVal != "" {
		return s.KeyIDVal
	}
	return "key"
}

// ObjectStoreStub signs object paths for tests.
type ObjectStoreStub struct {
	SignURLFn func(context.Context, string, time.Duration) (string, error)
}

// SignURL returns a canned URL unless overridden.
func (s ObjectStoreStub) SignURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	if s.SignURLFn != nil {
		return s.SignURLFn(ctx, objectPath, ttl)
	}
	return "https://files.example.com/signed/" + objectPath, nil
}
