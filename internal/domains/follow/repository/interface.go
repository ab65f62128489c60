package repository

import (
	"context"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/follow/model"
)

// Repository persists follows. Duplicates hit follows_pair_key, self-follows follows_no_self.
type Repository interface {
	Create(ctx context.Context, f *model.Follow) error
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)

	ListFollowers(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error)
	ListFollowing(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.Entry, int, error)

	CountFollowers(ctx context.Context, accountID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, accountID uuid.UUID) (int, error)
}
