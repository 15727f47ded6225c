package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/server/http/dto"
)

// AdminHandler exposes staff operations: listing, pricing, fulfillment.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ListQuotations handles GET /api/admin/quotations.
func (h *AdminHandler) ListQuotations(c *gin.Context) {
	quotations, err := h.facade.AllQuotations(c.Request.Context(), CurrentClaims(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toQuotationResponses(quotations))
}

// SetQuote handles PUT /api/admin/quotations/:id/quote.
func (h *AdminHandler) SetQuote(c *gin.Context) {
	var req dto.SetQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Total == nil {
		c.Status(http.StatusBadRequest)
		return
	}

	q, err := h.facade.SetQuote(
		c.Request.Context(),
		CurrentClaims(c),
		c.Param("id"),
		*req.Total,
		model.Currency(req.Currency),
		model.Status(req.Status),
	)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toQuotationResponse(*q))
}

// Advance handles POST /api/admin/quotations/:id/advance.
func (h *AdminHandler) Advance(c *gin.Context) {
	var req dto.AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	q, err := h.facade.AdvanceQuotation(c.Request.Context(), CurrentClaims(c), c.Param("id"), model.Status(req.Status))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toQuotationResponse(*q))
}

// ListContacts handles GET /api/admin/contacts.
func (h *AdminHandler) ListContacts(c *gin.Context) {
	contacts, err := h.facade.ContactSubmissions(c.Request.Context(), CurrentClaims(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	response := make([]dto.ContactResponse, 0, len(contacts))
	for _, sub := range contacts {
		response = append(response, toContactResponse(sub))
	}
	c.JSON(http.StatusOK, response)
}

func toContactResponse(sub model.ContactSubmission) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		Company:     sub.Company,
		Email:       sub.Email,
		Phone:       sub.Phone,
		ServiceType: sub.ServiceType,
		Message:     sub.Message,
		FilePath:    sub.FilePath,
		CreatedAt:   sub.CreatedAt,
	}
}
