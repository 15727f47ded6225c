package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// PaymentGateway is the external checkout collaborator. CapturedPayment
// returns an empty id when the gateway holds no captured payment yet.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency model.Currency, receipt string, notes map[string]string) (string, error)
	CapturedPayment(ctx context.Context, gatewayOrderID string) (string, error)
	VerifyCallback(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

// PaymentOrchestrator opens gateway checkout orders and reconciles their
// asynchronous completion against quotations.
type PaymentOrchestrator struct {
	quotations repository.QuotationRepository
	accounts   repository.AccountRepository
	profiles   repository.ProfileRepository
	sessions   repository.CheckoutSessionRepository
	gateway    PaymentGateway
}

// NewPaymentOrchestrator constructs PaymentOrchestrator.
func NewPaymentOrchestrator(
	quotations repository.QuotationRepository,
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	sessions repository.CheckoutSessionRepository,
	gateway PaymentGateway,
) *PaymentOrchestrator {
	return &PaymentOrchestrator{
		quotations: quotations,
		accounts:   accounts,
		profiles:   profiles,
		sessions:   sessions,
		gateway:    gateway,
	}
}

// InitiateCheckout opens a gateway order for a quoted request owned by the
// caller and records the session for later reconciliation.
func (u *PaymentOrchestrator) InitiateCheckout(ctx context.Context, claims model.Claims, quotationID string) (*model.CheckoutHandle, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return nil, err
	}

	q, err := u.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if q.UserID != claims.UserID {
		return nil, domainErrors.ErrForbidden
	}
	if q.Status != model.StatusQuoted || !q.Config.Priced() {
		return nil, domainErrors.ErrInvalidState
	}

	amountMinor := int64(math.Round(*q.Config.Total * 100))
	if amountMinor <= 0 {
		return nil, domainErrors.ErrInvalidState
	}
	currency := *q.Config.Currency

	orderID, err := u.gateway.CreateOrder(ctx, amountMinor, currency, q.ID, map[string]string{"quotation_id": q.ID})
	if err != nil {
		return nil, upstream(err)
	}

	session := model.CheckoutSession{
		GatewayOrderID: orderID,
		QuotationID:    q.ID,
		AmountMinor:    amountMinor,
		Currency:       currency,
		State:          model.SessionCreated,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	handle := &model.CheckoutHandle{
		GatewayOrderID: orderID,
		KeyID:          u.gateway.KeyID(),
		AmountMinor:    amountMinor,
		Currency:       currency,
		Description:    "Payment for Quote #" + shortID(q.ID),
	}
	if acc, err := u.accounts.GetByID(ctx, q.UserID); err == nil {
		handle.PrefillEmail = acc.Email
	}
	if p, err := u.profiles.GetByUserID(ctx, q.UserID); err == nil {
		if p.FullName != nil {
			handle.PrefillName = *p.FullName
		}
		if p.Phone != nil {
			handle.PrefillContact = *p.Phone
		}
	}
	if handle.PrefillName == "" && q.UserName != nil {
		handle.PrefillName = *q.UserName
	}
	return handle, nil
}

// CompleteCheckout is the reconciliation entry point invoked when the gateway
// reports completion. The signature is verified before anything is trusted,
// and the order must correlate to the quotation it claims to pay for.
func (u *PaymentOrchestrator) CompleteCheckout(ctx context.Context, quotationID, gatewayOrderID, paymentID, signature string) (*model.Quotation, error) {
	if !u.gateway.VerifyCallback(gatewayOrderID, paymentID, signature) {
		return nil, domainErrors.ErrUnauthorized
	}

	session, err := u.sessions.Get(ctx, gatewayOrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, upstream(err)
	}
	if session.QuotationID != quotationID {
		return nil, domainErrors.ErrUnauthorized
	}

	return u.settle(ctx, quotationID, gatewayOrderID, paymentID)
}

// PendingSessions returns checkout sessions still awaiting reconciliation,
// oldest first.
func (u *PaymentOrchestrator) PendingSessions(ctx context.Context, limit int) ([]model.CheckoutSession, error) {
	return u.sessions.ListPending(ctx, limit)
}

// ReconcileSession re-checks a pending gateway order whose completion
// callback may have been lost. Sessions with no captured payment are
// abandoned once they outlive maxAge.
func (u *PaymentOrchestrator) ReconcileSession(ctx context.Context, session model.CheckoutSession, maxAge time.Duration) error {
	paymentID, err := u.gateway.CapturedPayment(ctx, session.GatewayOrderID)
	if err != nil {
		return upstream(err)
	}
	if paymentID == "" {
		if time.Since(session.CreatedAt) > maxAge {
			return u.sessions.SetState(ctx, session.GatewayOrderID, model.SessionAbandoned)
		}
		return nil
	}

	_, err = u.settle(ctx, session.QuotationID, session.GatewayOrderID, paymentID)
	if errors.Is(err, domainErrors.ErrConflict) || errors.Is(err, domainErrors.ErrNotFound) {
		// another writer got there first; nothing left for this session
		return u.sessions.SetState(ctx, session.GatewayOrderID, model.SessionAbandoned)
	}
	return err
}

// settle performs the idempotent Quoted to Paid write shared by the callback
// path and the reconciler.
func (u *PaymentOrchestrator) settle(ctx context.Context, quotationID, gatewayOrderID, paymentID string) (*model.Quotation, error) {
	q, err := u.quotations.GetByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		return nil, upstream(err)
	}

	if q.Status == model.StatusPaid {
		// duplicate completion, nothing to mutate
		u.markSettled(ctx, gatewayOrderID)
		return q, nil
	}

	if err := u.quotations.MarkPaid(ctx, quotationID, paymentID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrConflict):
			// lost the race; if the winner recorded the same payment the
			// outcome is the one we wanted
			cur, curErr := u.quotations.GetByID(ctx, quotationID)
			if curErr == nil && cur.Status == model.StatusPaid && cur.PaymentID != nil && *cur.PaymentID == paymentID {
				u.markSettled(ctx, gatewayOrderID)
				return cur, nil
			}
			return nil, domainErrors.ErrConflict
		case errors.Is(err, domainErrors.ErrNotFound):
			return nil, err
		default:
			return nil, upstream(err)
		}
	}

	u.markSettled(ctx, gatewayOrderID)
	q.Status = model.StatusPaid
	q.PaymentID = &paymentID
	return q, nil
}

// markSettled is best effort; the reconciler revisits sessions it misses.
func (u *PaymentOrchestrator) markSettled(ctx context.Context, gatewayOrderID string) {
	_ = u.sessions.SetState(ctx, gatewayOrderID, model.SessionSettled)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
