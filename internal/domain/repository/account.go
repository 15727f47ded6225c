package repository

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// AccountRepository describes persistence operations with user accounts.
type AccountRepository interface {
	Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
}
