package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/comment/model"
	"thriven-backend/internal/domains/comment/repository"
	postModel "thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type Service interface {
	CreateComment(ctx context.Context, viewer shared.Viewer, postID uuid.UUID, req model.CreateCommentRequest) (*model.CommentResponse, error)
	UpdateComment(ctx context.Context, viewer shared.Viewer, id uuid.UUID, req model.UpdateCommentRequest) (*model.CommentResponse, error)
	DeleteComment(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error
	ListComments(ctx context.Context, viewer shared.Viewer, postID uuid.UUID, page, limit int) (*model.ListCommentsResponse, error)
	PinnedComments(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) ([]*model.CommentResponse, error)
}

// PostFinder is satisfied by the post repository
type PostFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*postModel.Post, error)
}

type commentService struct {
	repo     repository.Repository
	posts    PostFinder
	notifier shared.Notifier
	now      func() time.Time
}

func NewCommentService(repo repository.Repository, posts PostFinder, notifier shared.Notifier) Service {
	return &commentService{
		repo:     repo,
		posts:    posts,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateComment writes a comment when the post accepts comments. A pin requested by anyone
// but the post's author is dropped and the write goes through.
func (s *commentService) CreateComment(
	ctx context.Context,
	viewer shared.Viewer,
	postID uuid.UUID,
	req model.CreateCommentRequest,
) (*model.CommentResponse, error) {
	post, err := s.visiblePost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanComment(viewer.Authenticated()) {
		if !viewer.Authenticated() {
			return nil, shared.ErrUnauthorized
		}
		return nil, model.ErrCommentingClosed
	}

	now := s.now()
	c := &model.Comment{
		ID:         uuid.New(),
		PostID:     post.ID,
		AccountID:  viewer.AccountID,
		Text:       strings.TrimSpace(req.Text),
		IsPinned:   req.IsPinned,
		Importance: model.ImportanceNormal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Importance != nil {
		c.Importance = *req.Importance
	}
	s.enforcePin(c, post)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.CommentsCreated.Inc()

	if post.AuthorID != viewer.AccountID {
		msg := fmt.Sprintf("%s commented on %q", viewer.Username, post.Title)
		if err := s.notifier.Notify(ctx, post.AuthorID, &post.ID, msg); err != nil {
			logger.Error("Failed to enqueue comment notification", err)
		}
	}

	return s.load(ctx, c.ID)
}

// UpdateComment lets the commenter edit their comment; pin enforcement runs again
func (s *commentService) UpdateComment(
	ctx context.Context,
	viewer shared.Viewer,
	id uuid.UUID,
	req model.UpdateCommentRequest,
) (*model.CommentResponse, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AccountID != viewer.AccountID {
		return nil, model.ErrNotCommenter
	}

	post, err := s.posts.FindByID(ctx, existing.PostID)
	if err != nil {
		return nil, err
	}

	c := existing.Comment
	req.Apply(&c)
	if req.Text != nil {
		c.Text = strings.TrimSpace(c.Text)
	}
	s.enforcePin(&c, post)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return s.load(ctx, c.ID)
}

// DeleteComment is allowed to the commenter and to the post's author
func (s *commentService) DeleteComment(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error {
	if !viewer.Authenticated() {
		return shared.ErrUnauthorized
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if c.AccountID != viewer.AccountID {
		post, err := s.posts.FindByID(ctx, c.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != viewer.AccountID {
			return model.ErrNotCommenter
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *commentService) ListComments(
	ctx context.Context,
	viewer shared.Viewer,
	postID uuid.UUID,
	page, limit int,
) (*model.ListCommentsResponse, error) {
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}
	page, limit = utils.NormalizePage(page, limit, defaultLimit, maxLimit)

	comments, total, err := s.repo.ListByPost(ctx, postID, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.ListCommentsResponse{
		Comments: toResponses(comments),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// PinnedComments returns a post's pinned comments, most important first, then oldest first
func (s *commentService) PinnedComments(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) ([]*model.CommentResponse, error) {
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListPinned(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toResponses(comments), nil
}

func (s *commentService) enforcePin(c *model.Comment, post *postModel.Post) {
	if c.EnforcePin(post.AuthorID) {
		metrics.PinsCleared.Inc()
		logger.Debug(fmt.Sprintf("Cleared pin on comment %s: writer is not the author of post %s", c.ID, post.ID))
	}
}

func (s *commentService) visiblePost(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*postModel.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, postModel.ErrPostNotFound
	}
	return post, nil
}

func (s *commentService) load(ctx context.Context, id uuid.UUID) (*model.CommentResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ToResponse(), nil
}

func toResponses(comments []*model.CommentWithAuthor) []*model.CommentResponse {
	out := make([]*model.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ToResponse())
	}
	return out
}
