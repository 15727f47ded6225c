package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
	"github.com/miccroten/quoteportal/internal/domain/repository"
)

// ObjectStore issues time-bounded signed URLs for stored objects. Expiry is
// enforced by the store itself.
type ObjectStore interface {
	SignURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
}

// FileAccessBroker scopes signed URL issuance to objects referenced by a
// record the caller may see.
type FileAccessBroker struct {
	quotations repository.QuotationRepository
	contacts   repository.ContactRepository
	store      ObjectStore
	ttl        time.Duration
}

// NewFileAccessBroker constructs FileAccessBroker.
func NewFileAccessBroker(quotations repository.QuotationRepository, contacts repository.ContactRepository, store ObjectStore, ttl time.Duration) *FileAccessBroker {
	return &FileAccessBroker{quotations: quotations, contacts: contacts, store: store, ttl: ttl}
}

// IssueSignedURL returns a short-lived link for objectPath. The path must be
// referenced by a quotation the caller owns, or by any quotation or contact
// submission when the caller is an administrator.
func (u *FileAccessBroker) IssueSignedURL(ctx context.Context, claims model.Claims, objectPath string) (string, error) {
	if err := requireRole(claims, model.RoleCustomer); err != nil {
		return "", err
	}
	if objectPath == "" {
		return "", domainErrors.ErrNotFound
	}

	q, err := u.quotations.GetByFilePath(ctx, objectPath)
	switch {
	case err == nil:
		if claims.Role != model.RoleAdmin && q.UserID != claims.UserID {
			return "", domainErrors.ErrForbidden
		}
	case errors.Is(err, domainErrors.ErrNotFound):
		// contact attachments are only visible to staff
		if claims.Role != model.RoleAdmin {
			return "", domainErrors.ErrNotFound
		}
		if _, err := u.contacts.GetByFilePath(ctx, objectPath); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	url, err := u.store.SignURL(ctx, objectPath, u.ttl)
	if err != nil {
		return "", upstream(err)
	}
	return url, nil
}
