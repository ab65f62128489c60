package repository

import (
	"context"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/account/model"
)

// Repository is the persistence contract of accounts
type Repository interface {
	Create(ctx context.Context, a *model.Account) error

	// FindByID may be served from cache; cached copies carry no password hash
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)

	// FindByUsername always hits the database and loads the password hash
	FindByUsername(ctx context.Context, username string) (*model.Account, error)

	// FindByIDs loads several accounts at once, missing ids are absent from the map
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Account, error)

	Update(ctx context.Context, a *model.Account) error
	UpdateProfileImage(ctx context.Context, id uuid.UUID, objectKey string) error

	// Delete removes the account and everything that depends on it in one transaction
	Delete(ctx context.Context, id uuid.UUID) error
}
