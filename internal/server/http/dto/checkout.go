package dto

// CheckoutResponse carries everything the gateway's own UI needs to collect
// the payment.
type CheckoutResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	KeyID          string `json:"key_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	PrefillName    string `json:"prefill_name,omitempty"`
	PrefillEmail   string `json:"prefill_email,omitempty"`
	PrefillContact string `json:"prefill_contact,omitempty"`
}

// CallbackRequest is the completion signal reported for a gateway order.
type CallbackRequest struct {
	QuotationID      string `json:"quotation_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}
