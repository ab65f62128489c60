package repository

import (
	"context"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/post/model"
)

// Repository is the persistence contract of posts. viewerID feeds the liked/saved flags
// and the visibility of inactive posts; uuid.Nil is the anonymous viewer.
type Repository interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindWithStats(ctx context.Context, id, viewerID uuid.UUID) (*model.PostWithStats, error)

	// List returns active posts plus the viewer's own inactive ones
	List(ctx context.Context, req model.ListPostsRequest, viewerID uuid.UUID) ([]*model.PostWithStats, int, error)

	// Feed lists active posts of the accounts the viewer follows, newest first
	Feed(ctx context.Context, viewerID uuid.UUID, page, limit int) ([]*model.PostWithStats, int, error)

	// ListByAuthor returns every post of an author, inactive included
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.PostWithStats, error)

	Update(ctx context.Context, p *model.Post) error
	UpdateImage(ctx context.Context, id uuid.UUID, objectKey string) error

	// Delete removes the post with its comments, likes, saves and notifications
	Delete(ctx context.Context, id uuid.UUID) error

	CountLikes(ctx context.Context, postID uuid.UUID) (int, error)
	CountComments(ctx context.Context, postID uuid.UUID) (int, error)
}
