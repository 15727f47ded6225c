package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/server/http/dto"
	"github.com/miccroten/quoteportal/internal/usecase"
)

// QuotationHandler manages customer quotation endpoints.
type QuotationHandler struct {
	facade QuotationFacade
}

// NewQuotationHandler constructs QuotationHandler.
func NewQuotationHandler(facade QuotationFacade) *QuotationHandler {
	return &QuotationHandler{facade: facade}
}

// Submit handles POST /api/quotations.
func (h *QuotationHandler) Submit(c *gin.Context) {
	var req dto.QuotationSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	in := usecase.SubmitInput{
		Type:              model.QuotationType(req.Type),
		Config:            model.QuoteConfig{Spec: req.Config},
		AdditionalMessage: req.AdditionalMessage,
		UserName:          req.UserName,
		FilePath:          req.FilePath,
	}
	q, err := h.facade.SubmitQuotation(c.Request.Context(), CurrentClaims(c), in)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toQuotationResponse(*q))
}

// ListMine handles GET /api/quotations.
func (h *QuotationHandler) ListMine(c *gin.Context) {
	mine, err := h.facade.MyQuotations(c.Request.Context(), CurrentClaims(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.MyQuotationsResponse{
		Active: toQuotationResponses(mine.Active),
		Past:   toQuotationResponses(mine.Past),
	})
}

// Get handles GET /api/quotations/:id.
func (h *QuotationHandler) Get(c *gin.Context) {
	q, err := h.facade.Quotation(c.Request.Context(), CurrentClaims(c), c.Param("id"))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, toQuotationResponse(*q))
}
