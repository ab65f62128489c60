package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/engagement/model"
	"thriven-backend/internal/domains/engagement/repository"
	postModel "thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service interface {
	Like(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error)
	Unlike(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error)
	LikeStatus(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error)

	Save(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.Save, error)
	Unsave(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) error
	ListSaved(ctx context.Context, viewer shared.Viewer, page, limit int) (*model.ListSavedResponse, error)
}

// PostFinder is satisfied by the post repository
type PostFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*postModel.Post, error)
}

type engagementService struct {
	repo     repository.Repository
	posts    PostFinder
	notifier shared.Notifier
	now      func() time.Time
}

func NewEngagementService(repo repository.Repository, posts PostFinder, notifier shared.Notifier) Service {
	return &engagementService{
		repo:     repo,
		posts:    posts,
		notifier: notifier,
		now:      time.Now,
	}
}

// ========================================
// LIKES
// ========================================

// Like records the like; a second like of the same post is a conflict
func (s *engagementService) Like(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	post, err := s.target(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	like := &model.Like{
		ID:        uuid.New(),
		AccountID: viewer.AccountID,
		PostID:    post.ID,
		LikedAt:   s.now(),
	}
	if err := s.repo.CreateLike(ctx, like); err != nil {
		record(model.KindLike, err)
		return nil, err
	}
	record(model.KindLike, nil)

	if post.AuthorID != viewer.AccountID {
		msg := fmt.Sprintf("%s liked %q", viewer.Username, post.Title)
		if err := s.notifier.Notify(ctx, post.AuthorID, &post.ID, msg); err != nil {
			logger.Error("Failed to enqueue like notification", err)
		}
	}

	return s.status(ctx, viewer, post.ID)
}

func (s *engagementService) Unlike(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	if err := s.repo.DeleteLike(ctx, viewer.AccountID, postID); err != nil {
		return nil, err
	}
	return s.status(ctx, viewer, postID)
}

func (s *engagementService) LikeStatus(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, postModel.ErrPostNotFound
	}
	return s.status(ctx, viewer, postID)
}

func (s *engagementService) status(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	count, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	st := &model.LikeStatus{PostID: postID, LikesCount: count}
	if viewer.Authenticated() {
		if st.LikedByMe, err = s.repo.HasLiked(ctx, viewer.AccountID, postID); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// ========================================
// SAVES
// ========================================

// Save bookmarks the post; a second save of the same post is a conflict
func (s *engagementService) Save(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*model.Save, error) {
	post, err := s.target(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	save := &model.Save{
		ID:        uuid.New(),
		AccountID: viewer.AccountID,
		PostID:    post.ID,
		SavedAt:   s.now(),
	}
	if err := s.repo.CreateSave(ctx, save); err != nil {
		record(model.KindSave, err)
		return nil, err
	}
	record(model.KindSave, nil)
	return save, nil
}

func (s *engagementService) Unsave(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) error {
	if !viewer.Authenticated() {
		return shared.ErrUnauthorized
	}
	return s.repo.DeleteSave(ctx, viewer.AccountID, postID)
}

func (s *engagementService) ListSaved(ctx context.Context, viewer shared.Viewer, page, limit int) (*model.ListSavedResponse, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	page, limit = utils.NormalizePage(page, limit, defaultLimit, maxLimit)

	posts, total, err := s.repo.ListSaved(ctx, viewer.AccountID, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.ListSavedResponse{Posts: posts, Total: total, Page: page, Limit: limit}, nil
}

// target loads a post the viewer may engage with: it must be visible to them
func (s *engagementService) target(ctx context.Context, viewer shared.Viewer, postID uuid.UUID) (*postModel.Post, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewer) {
		return nil, postModel.ErrPostNotFound
	}
	return post, nil
}

func record(kind model.Kind, err error) {
	outcome := metrics.OutcomeCreated
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrConflict):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeFailed
	}
	metrics.Engagements.WithLabelValues(string(kind), outcome).Inc()
}
