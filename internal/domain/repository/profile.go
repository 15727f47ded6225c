package repository

import (
	"context"

	"github.com/miccroten/quoteportal/internal/domain/model"
)

// ProfileRepository reads and seeds customer contact details.
type ProfileRepository interface {
	Upsert(ctx context.Context, p model.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
}
