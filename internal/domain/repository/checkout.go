package repository

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// CheckoutSessionRepository tracks gateway orders awaiting reconciliation.
type CheckoutSessionRepository interface {
	Create(ctx context.Context, s model.CheckoutSession) error
	Get(ctx context.Context, gatewayOrderID string) (*model.CheckoutSession, error)
	ListPending(ctx context.Context, limit int) ([]model.CheckoutSession, error)
	SetState(ctx context.Context, gatewayOrderID string, state model.SessionState) error
}
