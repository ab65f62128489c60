package repository

import (
	"context"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/comment/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CommentWithAuthor, error)
	Update(ctx context.Context, c *model.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPost returns pinned comments first (importance DESC, created ASC),
	// then the rest in chronological order
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*model.CommentWithAuthor, int, error)

	// ListPinned returns the pinned comments of a post, importance DESC then created ASC
	ListPinned(ctx context.Context, postID uuid.UUID) ([]*model.CommentWithAuthor, error)
}
