package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
)

// AccountRepositoryStub stores accounts in-memory for tests.
type AccountRepositoryStub struct {
	Accounts map[string]*model.Account
	ByID     map[int64]*model.Account
	Next     int64
	Err      error
}

// NewAccountRepositoryStub constructs stub repository with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		Accounts: make(map[string]*model.Account),
		ByID:     make(map[int64]*model.Account),
		Next:     1,
	}
}

// Create registers account unless one exists or stub has explicit error.
func (s *AccountRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]*model.Account)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Account)
	}
	if _, exists := s.Accounts[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	account := &model.Account{ID: s.Next, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	s.Next++
	s.Accounts[email] = account
	s.ByID[account.ID] = account
	return account, nil
}

// GetByEmail fetches account by email or returns not found.
func (s *AccountRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.Accounts[email]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.ByID[id]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProfileRepositoryStub stores customer profiles in-memory.
type ProfileRepositoryStub struct {
	Profiles map[int64]*model.Profile
	UpsertFn func(context.Context, model.Profile) error
	GetFn    func(context.Context, int64) (*model.Profile, error)
}

// NewProfileRepositoryStub constructs stub with an initialized map.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[int64]*model.Profile)}
}

// Upsert stores the profile keyed by user id.
func (s *ProfileRepositoryStub) Upsert(ctx context.Context, p model.Profile) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, p)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[int64]*model.Profile)
	}
	stored := p
	s.Profiles[p.UserID] = &stored
	return nil
}

// GetByUserID returns the stored profile or not found.
func (s *ProfileRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if profile, ok := s.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// QuotationRepositoryStub keeps quotations in-memory and mimics the
// conditional writes of the real storage layer.
type QuotationRepositoryStub struct {
	Quotations map[string]*model.Quotation
	Next       int
	Err        error

	CreateFn        func(context.Context, model.Quotation) (*model.Quotation, error)
	GetByIDFn       func(context.Context, string) (*model.Quotation, error)
	SetQuoteFn      func(context.Context, string, model.QuoteConfig, model.Status, []model.Status) error
	MarkPaidFn      func(context.Context, string, string) error
	AdvanceStatusFn func(context.Context, string, model.Status, model.Status) error
}

// NewQuotationRepositoryStub constructs stub with an initialized map.
func NewQuotationRepositoryStub() *QuotationRepositoryStub {
	return &QuotationRepositoryStub{Quotations: make(map[string]*model.Quotation), Next: 1}
}

// Create assigns an identifier and stores the quotation.
func (s *QuotationRepositoryStub) Create(ctx context.Context, q model.Quotation) (*model.Quotation, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, q)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Quotations == nil {
		s.Quotations = make(map[string]*model.Quotation)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	q.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", s.Next)
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	s.Next++
	stored := q
	s.Quotations[q.ID] = &stored
	return &q, nil
}

// GetByID returns a copy of the stored quotation or not found.
func (s *QuotationRepositoryStub) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if q, ok := s.Quotations[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByFilePath returns the quotation owning the given object path.
func (s *QuotationRepositoryStub) GetByFilePath(ctx context.Context, filePath string) (*model.Quotation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, q := range s.Quotations {
		if q.FilePath != nil && *q.FilePath == filePath {
			copied := *q
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns every stored quotation.
func (s *QuotationRepositoryStub) ListAll(ctx context.Context) ([]model.Quotation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Quotation, 0, len(s.Quotations))
	for _, q := range s.Quotations {
		out = append(out, *q)
	}
	return out, nil
}

// ListByOwner returns quotations belonging to the given user.
func (s *QuotationRepositoryStub) ListByOwner(ctx context.Context, userID int64) ([]model.Quotation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Quotation
	for _, q := range s.Quotations {
		if q.UserID == userID {
			out = append(out, *q)
		}
	}
	return out, nil
}

// SetQuote writes config and status if current status is still expected.
func (s *QuotationRepositoryStub) SetQuote(ctx context.Context, id string, config model.QuoteConfig, status model.Status, expected []model.Status) error {
	if s.SetQuoteFn != nil {
		return s.SetQuoteFn(ctx, id, config, status, expected)
	}
	q, ok := s.Quotations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	matched := false
	for _, e := range expected {
		if q.Status == e {
			matched = true
			break
		}
	}
	if !matched {
		return domainErrors.ErrConflict
	}
	q.Config = config
	q.Status = status
	q.UpdatedAt = time.Now()
	return nil
}

// MarkPaid records the payment once while the quotation is still Quoted.
func (s *QuotationRepositoryStub) MarkPaid(ctx context.Context, id string, paymentID string) error {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, paymentID)
	}
	q, ok := s.Quotations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if q.Status != model.StatusQuoted || q.PaymentID != nil {
		return domainErrors.ErrConflict
	}
	q.Status = model.StatusPaid
	q.PaymentID = &paymentID
	q.UpdatedAt = time.Now()
	return nil
}

// AdvanceStatus moves the quotation forward if status is still expected.
func (s *QuotationRepositoryStub) AdvanceStatus(ctx context.Context, id string, next, expected model.Status) error {
	if s.AdvanceStatusFn != nil {
		return s.AdvanceStatusFn(ctx, id, next, expected)
	}
	q, ok := s.Quotations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if q.Status != expected {
		return domainErrors.ErrConflict
	}
	q.Status = next
	q.UpdatedAt = time.Now()
	return nil
}

// ContactRepositoryStub stores contact submissions in-memory.
type ContactRepositoryStub struct {
	Submissions []model.ContactSubmission
	Next        int64
	Err         error
}

// Create appends the submission with a generated identifier.
func (s *ContactRepositoryStub) Create(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	sub.ID = s.Next
	sub.CreatedAt = time.Now()
	s.Next++
	s.Submissions = append(s.Submissions, sub)
	return &sub, nil
}

// ListAll returns the stored submissions.
func (s *ContactRepositoryStub) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Submissions, nil
}

// GetByFilePath returns the submission owning the given object path.
func (s *ContactRepositoryStub) GetByFilePath(ctx context.Context, path string) (*model.ContactSubmission, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Submissions {
		if s.Submissions[i].FilePath != nil && strings.EqualFold(*s.Submissions[i].FilePath, path) {
			sub := s.Submissions[i]
			return &sub, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CheckoutSessionRepositoryStub stores checkout sessions in-memory.
type CheckoutSessionRepositoryStub struct {
	Sessions map[string]*model.CheckoutSession
	Err      error
}

// NewCheckoutSessionRepositoryStub constructs stub with an initialized map.
func NewCheckoutSessionRepositoryStub() *CheckoutSessionRepositoryStub {
	return &CheckoutSessionRepositoryStub{Sessions: make(map[string]*model.CheckoutSession)}
}

// Create stores the session keyed by gateway order id.
func (s *CheckoutSessionRepositoryStub) Create(ctx context.Context, session model.CheckoutSession) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Sessions == nil {
		s.Sessions = make(map[string]*model.CheckoutSession)
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	stored := session
	s.Sessions[session.GatewayOrderID] = &stored
	return nil
}

// Get returns a copy of the stored session or not found.
func (s *CheckoutSessionRepositoryStub) Get(ctx context.Context, gatewayOrderID string) (*model.CheckoutSession, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if session, ok := s.Sessions[gatewayOrderID]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListPending returns sessions still in the created state.
func (s *CheckoutSessionRepositoryStub) ListPending(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.CheckoutSession
	for _, session := range s.Sessions {
		if session.State != model.SessionCreated {
			continue
		}
		out = append(out, *session)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// SetState updates reconciliation state of the stored session.
func (s *CheckoutSessionRepositoryStub) SetState(ctx context.Context, gatewayOrderID string, state model.SessionState) error {
	if s.Err != nil {
		return s.Err
	}
	session, ok := s.Sessions[gatewayOrderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	session.State = state
	return nil
}
