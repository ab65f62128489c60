package repository

import (
	"context"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/engagement/model"
)

// Repository persists likes and saves. Duplicate pairs are rejected by the
// likes_account_post_key and saves_account_post_key constraints.
type Repository interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, accountID, postID uuid.UUID) error
	CountLikes(ctx context.Context, postID uuid.UUID) (int, error)
	HasLiked(ctx context.Context, accountID, postID uuid.UUID) (bool, error)

	CreateSave(ctx context.Context, save *model.Save) error
	DeleteSave(ctx context.Context, accountID, postID uuid.UUID) error
	ListSaved(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*model.SavedPost, int, error)
}
