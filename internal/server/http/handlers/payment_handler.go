package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/server/http/dto"
)

// PaymentHandler drives checkout initiation and the gateway completion
// callback.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Checkout handles POST /api/quotations/:id/checkout.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	handle, err := h.facade.InitiateCheckout(c.Request.Context(), CurrentClaims(c), c.Param("id"))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		GatewayOrderID: handle.GatewayOrderID,
		KeyID:          handle.KeyID,
		Amount:         handle.AmountMinor,
		Currency:       string(handle.Currency),
		Description:    handle.Description,
		PrefillName:    handle.PrefillName,
		PrefillEmail:   handle.PrefillEmail,
		PrefillContact: handle.PrefillContact,
	})
}

// Callback handles POST /api/payments/callback. The route carries no session;
// trust comes solely from the gateway signature verified downstream.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	q, err := h.facade.CompleteCheckout(
		c.Request.Context(),
		req.QuotationID,
		req.GatewayOrderID,
		req.GatewayPaymentID,
		req.Signature,
	)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toQuotationResponse(*q))
}
