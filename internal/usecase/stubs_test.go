package usecase

import (
	"context"
	"time"

	"github.com/miccroten/quoteportal/internal/domain/model"
	pkgAuth "github.com/miccroten/quoteportal/internal/pkg/auth"
)

var (
	adminClaims    = model.Claims{UserID: 1, Role: model.RoleAdmin}
	customerClaims = model.Claims{UserID: 7, Role: model.RoleCustomer}
)

type stubQuotationRepository struct {
	createFn        func(context.Context, model.Quotation) (*model.Quotation, error)
	getByIDFn       func(context.Context, string) (*model.Quotation, error)
	getByFilePathFn func(context.Context, string) (*model.Quotation, error)
	listAllFn       func(context.Context) ([]model.Quotation, error)
	listByOwnerFn   func(context.Context, int64) ([]model.Quotation, error)
	setQuoteFn      func(context.Context, string, model.QuoteConfig, model.Status, []model.Status) error
	markPaidFn      func(context.Context, string, string) error
	advanceFn       func(context.Context, string, model.Status, model.Status) error
}

func (s stubQuotationRepository) Create(ctx context.Context, q model.Quotation) (*model.Quotation, error) {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, q)
}

func (s stubQuotationRepository) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	if s.getByIDFn == nil {
		panic("not implemented")
	}
	return s.getByIDFn(ctx, id)
}

func (s stubQuotationRepository) GetByFilePath(ctx context.Context, path string) (*model.Quotation, error) {
	if s.getByFilePathFn == nil {
		panic("not implemented")
	}
	return s.getByFilePathFn(ctx, path)
}

func (s stubQuotationRepository) ListAll(ctx context.Context) ([]model.Quotation, error) {
	if s.listAllFn == nil {
		panic("not implemented")
	}
	return s.listAllFn(ctx)
}

func (s stubQuotationRepository) ListByOwner(ctx context.Context, userID int64) ([]model.Quotation, error) {
	if s.listByOwnerFn == nil {
		panic("not implemented")
	}
	return s.listByOwnerFn(ctx, userID)
}

func (s stubQuotationRepository) SetQuote(ctx context.Context, id string, config model.QuoteConfig, status model.Status, expected []model.Status) error {
	if s.setQuoteFn == nil {
		panic("not implemented")
	}
	return s.setQuoteFn(ctx, id, config, status, expected)
}

func (s stubQuotationRepository) MarkPaid(ctx context.Context, id string, paymentID string) error {
	if s.markPaidFn == nil {
		panic("not implemented")
	}
	return s.markPaidFn(ctx, id, paymentID)
}

func (s stubQuotationRepository) AdvanceStatus(ctx context.Context, id string, next, expected model.Status) error {
	if s.advanceFn == nil {
		panic("not implemented")
	}
	return s.advanceFn(ctx, id, next, expected)
}

type stubAccountRepository struct {
	createFn     func(context.Context, string, string, model.Role) (*model.Account, error)
	getByEmailFn func(context.Context, string) (*model.Account, error)
	getByIDFn    func(context.Context, int64) (*model.Account, error)
}

func (s stubAccountRepository) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.Account, error) {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, email, passwordHash, role)
}

func (s stubAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if s.getByEmailFn == nil {
		panic("not implemented")
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubAccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.getByIDFn == nil {
		panic("not implemented")
	}
	return s.getByIDFn(ctx, id)
}

type stubProfileRepository struct {
	upsertFn func(context.Context, model.Profile) error
	getFn    func(context.Context, int64) (*model.Profile, error)
}

func (s stubProfileRepository) Upsert(ctx context.Context, p model.Profile) error {
	if s.upsertFn == nil {
		panic("not implemented")
	}
	return s.upsertFn(ctx, p)
}

func (s stubProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.getFn == nil {
		panic("not implemented")
	}
	return s.getFn(ctx, userID)
}

type stubContactRepository struct {
	createFn        func(context.Context, model.ContactSubmission) (*model.ContactSubmission, error)
	listAllFn       func(context.Context) ([]model.ContactSubmission, error)
	getByFilePathFn func(context.Context, string) (*model.ContactSubmission, error)
}

func (s stubContactRepository) Create(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, sub)
}

func (s stubContactRepository) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	if s.listAllFn == nil {
		panic("not implemented")
	}
	return s.listAllFn(ctx)
}

func (s stubContactRepository) GetByFilePath(ctx context.Context, path string) (*model.ContactSubmission, error) {
	if s.getByFilePathFn == nil {
		panic("not implemented")
	}
	return s.getByFilePathFn(ctx, path)
}

type stubCheckoutSessionRepository struct {
	createFn      func(context.Context, model.CheckoutSession) error
	getFn         func(context.Context, string) (*model.CheckoutSession, error)
	listPendingFn func(context.Context, int) ([]model.CheckoutSession, error)
	setStateFn    func(context.Context, string, model.SessionState) error
}

func (s stubCheckoutSessionRepository) Create(ctx context.Context, sess model.CheckoutSession) error {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, sess)
}

func (s stubCheckoutSessionRepository) Get(ctx context.Context, gatewayOrderID string) (*model.CheckoutSession, error) {
	if s.getFn == nil {
		panic("not implemented")
	}
	return s.getFn(ctx, gatewayOrderID)
}

func (s stubCheckoutSessionRepository) ListPending(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	if s.listPendingFn == nil {
		panic("not implemented")
	}
	return s.listPendingFn(ctx, limit)
}

func (s stubCheckoutSessionRepository) SetState(ctx context.Context, gatewayOrderID string, state model.SessionState) error {
	if s.setStateFn == nil {
		panic("not implemented")
	}
	return s.setStateFn(ctx, gatewayOrderID, state)
}

type stubGateway struct {
	createOrderFn func(context.Context, int64, model.Currency, string, map[string]string) (string, error)
	capturedFn    func(context.Context, string) (string, error)
	verifyFn      func(string, string, string) bool
	keyID         string
}

func (s stubGateway) CreateOrder(ctx context.Context, amountMinor int64, currency model.Currency, receipt string, notes map[string]string) (string, error) {
	if s.createOrderFn == nil {
		panic("not implemented")
	}
	return s.createOrderFn(ctx, amountMinor, currency, receipt, notes)
}

func (s stubGateway) CapturedPayment(ctx context.Context, gatewayOrderID string) (string, error) {
	if s.capturedFn == nil {
		panic("not implemented")
	}
	return s.capturedFn(ctx, gatewayOrderID)
}

func (s stubGateway) VerifyCallback(gatewayOrderID, paymentID, signature string) bool {
	if s.verifyFn == nil {
		panic("not implemented")
	}
	return s.verifyFn(gatewayOrderID, paymentID, signature)
}

func (s stubGateway) KeyID() string {
	return s.keyID
}

type stubObjectStore struct {
	signFn func(context.Context, string, time.Duration) (string, error)
}

func (s stubObjectStore) SignURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	if s.signFn == nil {
		panic("not implemented")
	}
	return s.signFn(ctx, objectPath, ttl)
}

type stubHasher struct {
	hashFn    func(string) (string, error)
	compareFn func(string, string) error
}

func (s stubHasher) Hash(password string) (string, error) {
	if s.hashFn == nil {
		return "hash:" + password, nil
	}
	return s.hashFn(password)
}

func (s stubHasher) Compare(hash string, password string) error {
	if s.compareFn == nil {
		return nil
	}
	return s.compareFn(hash, password)
}

type stubStrategy struct {
	issueFn func(pkgAuth.Claims) (string, error)
	parseFn func(string) (pkgAuth.Claims, error)
}

func (s stubStrategy) IssueToken(claims pkgAuth.Claims) (string, error) {
	if s.issueFn == nil {
		return "token", nil
	}
	return s.issueFn(claims)
}

func (s stubStrategy) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.parseFn == nil {
		panic("not implemented")
	}
	return s.parseFn(token)
}

func (stubStrategy) Name() string { return "stub" }

func ptr[T any](v T) *T { return &v }
