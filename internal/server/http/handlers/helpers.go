package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/server/http/dto"
	"github.com/miccroten/quoteportal/internal/server/http/middleware"
)

// CurrentClaims extracts the verified caller identity from context.
func CurrentClaims(c *gin.Context) model.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return model.Claims{Role: model.RoleAnonymous}
	}
	claims, ok := val.(model.Claims)
	if !ok {
		return model.Claims{Role: model.RoleAnonymous}
	}
	return claims
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toQuotationResponse(q model.Quotation) dto.QuotationResponse {
	return dto.QuotationResponse{
		ID:                q.ID,
		Type:              string(q.Type),
		Status:            string(q.Status),
		Config:            q.Config,
		AdditionalMessage: q.AdditionalMessage,
		UserName:          q.UserName,
		FilePath:          q.FilePath,
		PaymentID:         q.PaymentID,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func toQuotationResponses(quotations []model.Quotation) []dto.QuotationResponse {
	response := make([]dto.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		response = append(response, toQuotationResponse(q))
	}
	return response
}
