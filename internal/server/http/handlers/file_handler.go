package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miccroten/quoteportal/internal/server/http/dto"
)

// FileHandler issues signed URLs for stored objects.
type FileHandler struct {
	facade FileFacade
}

// NewFileHandler constructs FileHandler.
func NewFileHandler(facade FileFacade) *FileHandler {
	return &FileHandler{facade: facade}
}

// SignedURL handles POST /api/files/signed-url.
func (h *FileHandler) SignedURL(c *gin.Context) {
	var req dto.SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	url, err := h.facade.SignedURL(c.Request.Context(), CurrentClaims(c), req.Path)
	if err != nil {
		c.Status(statusForError(err))
		return
	}

	c.JSON(http.StatusOK, dto.SignedURLResponse{URL: url})
}
