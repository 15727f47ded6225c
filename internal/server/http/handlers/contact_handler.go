package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/server/http/dto"
)

// ContactHandler records public inquiries.
type ContactHandler struct {
	facade ContactFacade
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(facade ContactFacade) *ContactHandler {
	return &ContactHandler{facade: facade}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	sub, err := h.facade.SubmitContact(c.Request.Context(), model.ContactSubmission{
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Message:     req.Message,
		FilePath:    req.FilePath,
	})
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusCreated, toContactResponse(*sub))
}
