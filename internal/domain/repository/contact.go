package repository

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// ContactRepository persists public contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, sub model.ContactSubmission) (*model.ContactSubmission, error)
	ListAll(ctx context.Context) ([]model.ContactSubmission, error)
	GetByFilePath(ctx context.Context, path string) (*model.ContactSubmission, error)
}
