package usecase

import (
	"context"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// ContactUseCase records public inquiries and exposes them to staff.
type ContactUseCase struct {
	contacts repository.ContactRepository
}

// NewContactUseCase constructs ContactUseCase.
func NewContactUseCase(contacts repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{contacts: contacts}
}

// Submit stores an inquiry. The form is public, but a way to reach back is
// required.
func (u *ContactUseCase) Submit(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error) {
	if sub.Email == nil && sub.Phone == nil {
		return nil, domainErrors.ErrValidation
	}
	return u.contacts.Create(ctx, sub)
}

// ListAll returns inquiries newest first for the admin view.
func (u *ContactUseCase) ListAll(ctx context.Context, claims model.Claims) ([]model.ContactSubmission, error) {
	if err := requireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.contacts.ListAll(ctx)
}
