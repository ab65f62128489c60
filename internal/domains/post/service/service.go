package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/domains/post/repository"
	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service is the business contract of the post domain
type Service interface {
	CreatePost(ctx context.Context, viewer shared.Viewer, req model.CreatePostRequest) (*model.PostResponse, error)
	GetPost(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.PostResponse, error)
	ListPosts(ctx context.Context, viewer shared.Viewer, req model.ListPostsRequest) (*model.ListPostsResponse, error)
	Feed(ctx context.Context, viewer shared.Viewer, page, limit int) (*model.ListPostsResponse, error)
	UpdatePost(ctx context.Context, viewer shared.Viewer, id uuid.UUID, req model.UpdatePostRequest) (*model.PostResponse, error)
	DeletePost(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error
	UploadImage(ctx context.Context, viewer shared.Viewer, id uuid.UUID, data []byte) (*model.PostResponse, error)
	ExportPosts(ctx context.Context, viewer shared.Viewer) (*excelize.File, int, error)
}

// AccountFinder is satisfied by the account repository
type AccountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*accountModel.Account, error)
}

type postService struct {
	repo     repository.Repository
	accounts AccountFinder
	media    shared.MediaStore
	now      func() time.Time
}

func NewPostService(repo repository.Repository, accounts AccountFinder, media shared.MediaStore) Service {
	return &postService{
		repo:     repo,
		accounts: accounts,
		media:    media,
		now:      time.Now,
	}
}

// =====================================================
// CREATE
// =====================================================

// CreatePost publishes a post. Only accounts flagged as authors may publish.
func (s *postService) CreatePost(ctx context.Context, viewer shared.Viewer, req model.CreatePostRequest) (*model.PostResponse, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	author, err := s.accounts.FindByID(ctx, viewer.AccountID)
	if err != nil {
		return nil, err
	}
	if !author.IsAuthor {
		return nil, model.ErrNotAuthor
	}

	now := s.now()
	p := &model.Post{
		ID:                   uuid.New(),
		AuthorID:             author.ID,
		Title:                strings.TrimSpace(req.Title),
		Genre:                req.Genre,
		AgeRating:            req.AgeRating,
		SkillLevel:           req.SkillLevel,
		Description:          strings.TrimSpace(req.Description),
		IsActive:             true,
		CommentSectionClosed: req.CommentSectionClosed,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	logger.Info("Post created", map[string]interface{}{
		"post_id":   p.ID.String(),
		"author_id": author.ID.String(),
		"genre":     string(p.Genre),
	})

	created := &model.PostWithStats{Post: *p, Author: author.ToSummary()}
	return created.ToResponse(viewer), nil
}

// =====================================================
// READ
// =====================================================

func (s *postService) GetPost(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.PostResponse, error) {
	ps, err := s.repo.FindWithStats(ctx, id, viewer.AccountID)
	if err != nil {
		return nil, err
	}
	if !ps.VisibleTo(viewer) {
		return nil, model.ErrPostNotFound
	}
	return ps.ToResponse(viewer), nil
}

func (s *postService) ListPosts(ctx context.Context, viewer shared.Viewer, req model.ListPostsRequest) (*model.ListPostsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Page, req.Limit = utils.NormalizePage(req.Page, req.Limit, defaultLimit, maxLimit)

	posts, total, err := s.repo.List(ctx, req, viewer.AccountID)
	if err != nil {
		return nil, err
	}
	return toListResponse(posts, total, req.Page, req.Limit, viewer), nil
}

// Feed lists the newest active posts of the accounts the viewer follows
func (s *postService) Feed(ctx context.Context, viewer shared.Viewer, page, limit int) (*model.ListPostsResponse, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	page, limit = utils.NormalizePage(page, limit, defaultLimit, maxLimit)

	posts, total, err := s.repo.Feed(ctx, viewer.AccountID, page, limit)
	if err != nil {
		return nil, err
	}
	return toListResponse(posts, total, page, limit, viewer), nil
}

func toListResponse(posts []*model.PostWithStats, total, page, limit int, viewer shared.Viewer) *model.ListPostsResponse {
	out := make([]*model.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ToResponse(viewer))
	}
	return &model.ListPostsResponse{Posts: out, Total: total, Page: page, Limit: limit}
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (s *postService) UpdatePost(
	ctx context.Context,
	viewer shared.Viewer,
	id uuid.UUID,
	req model.UpdatePostRequest,
) (*model.PostResponse, error) {
	p, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, viewer, id)
}

// DeletePost removes the post with every comment, like, save and notification on it
func (s *postService) DeletePost(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error {
	p, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	if err := s.media.RemoveImages(ctx, imagePrefix(p)); err != nil {
		logger.Error("Failed to schedule post image removal", err)
	}
	return nil
}

func (s *postService) UploadImage(ctx context.Context, viewer shared.Viewer, id uuid.UUID, data []byte) (*model.PostResponse, error) {
	p, err := s.ownedPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	key, err := s.media.SaveImage(ctx, imagePrefix(p), data)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateImage(ctx, p.ID, key); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, viewer, id)
}

func (s *postService) ownedPost(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.Post, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != viewer.AccountID {
		if !p.IsActive {
			return nil, model.ErrPostNotFound
		}
		return nil, model.ErrNotOwner
	}
	return p, nil
}

// Post covers live under book_images/<author>/<post> so deleting an account can sweep them all
func imagePrefix(p *model.Post) string {
	return path.Join(shared.PostImagePrefix, p.AuthorID.String(), p.ID.String())
}

// =====================================================
// EXPORT
// =====================================================

// ExportPosts builds a workbook of the caller's posts with their like and comment counts
func (s *postService) ExportPosts(ctx context.Context, viewer shared.Viewer) (*excelize.File, int, error) {
	if !viewer.Authenticated() {
		return nil, 0, shared.ErrUnauthorized
	}

	posts, err := s.repo.ListByAuthor(ctx, viewer.AccountID)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts for export: %w", err)
	}

	f, err := buildPostsWorkbook(posts)
	if err != nil {
		return nil, 0, fmt.Errorf("build workbook: %w", err)
	}
	return f, len(posts), nil
}

const exportSheet = "Posts"

var exportHeaders = []string{
	"ID",
	"Title",
	"Genre",
	"Age Rating",
	"Skill Level",
	"Active",
	"Comments Closed",
	"Likes",
	"Comments",
	"Image",
	"Created At",
	"Updated At",
}

func buildPostsWorkbook(posts []*model.PostWithStats) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, p := range posts {
		row := []interface{}{
			p.ID.String(),
			p.Title,
			string(p.Genre),
			string(p.AgeRating),
			string(p.SkillLevel),
			p.IsActive,
			p.CommentSectionClosed,
			p.LikesCount,
			p.CommentsCount,
			p.ImageRef(),
			p.CreatedAt.Format("2006-01-02 15:04:05"),
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
