package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/server/http/dto"
)

// ProfileHandler reads and updates the caller's account context.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	account, profile, err := h.facade.AccountProfile(c.Request.Context(), CurrentClaims(c))
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Email:    account.Email,
		FullName: profile.FullName,
		Phone:    profile.Phone,
	})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.facade.UpdateProfile(c.Request.Context(), CurrentClaims(c), req.FullName, req.Phone)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		FullName: profile.FullName,
		Phone:    profile.Phone,
	})
}
