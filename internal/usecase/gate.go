package usecase

import (
	"fmt"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
)

// requireRole gates an operation on the caller's resolved role. An
// unauthenticated caller is distinguished from an authenticated one whose
// role is insufficient.
func requireRole(claims model.Claims, min model.Role) error {
	if claims.UserID == 0 || !claims.Role.Valid() || claims.Role == model.RoleAnonymous {
		return domainErrors.ErrUnauthorized
	}
	if !claims.Role.AtLeast(min) {
		return domainErrors.ErrForbidden
	}
	return nil
}

// upstream tags err as a retryable dependency failure.
func upstream(err error) error {
	return fmt.Errorf("%w: %v", domainErrors.ErrUpstreamUnavailable, err)
}
