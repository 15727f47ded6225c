package model

import "time"

// SessionState tracks reconciliation progress of a gateway checkout order.
type SessionState string

const (
	SessionCreated   SessionState = "created"
	SessionSettled   SessionState = "settled"
	SessionAbandoned SessionState = "abandoned"
)

// CheckoutSession correlates a gateway order with the quotation it pays for.
// Sessions left in the created state are re-checked by the reconciler in case
// the completion callback never arrived.
type CheckoutSession struct {
	GatewayOrderID string
	QuotationID    string
	AmountMinor    int64
	Currency       Currency
	State          SessionState
	CreatedAt      time.Time
}

// CheckoutHandle is returned to the customer so the gateway's own UI can
// collect the payment.
type CheckoutHandle struct {
	GatewayOrderID string
	KeyID          string
	AmountMinor    int64
	Currency       Currency
	Description    string
	PrefillName    string
	PrefillEmail   string
	PrefillContact string
}
