package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/shared"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type CreatePostRequest struct {
	Title                string            `json:"title" binding:"required"`
	Genre                Genre             `json:"genre" binding:"required"`
	AgeRating            AgeRating         `json:"age_rating" binding:"required"`
	SkillLevel           shared.SkillLevel `json:"skill_level" binding:"required"`
	Description          string            `json:"description" binding:"required"`
	CommentSectionClosed bool              `json:"comment_section_closed"`
}

// UpdatePostRequest is a partial update
type UpdatePostRequest struct {
	Title                *string            `json:"title"`
	Genre                *Genre             `json:"genre"`
	AgeRating            *AgeRating         `json:"age_rating"`
	SkillLevel           *shared.SkillLevel `json:"skill_level"`
	Description          *string            `json:"description"`
	IsActive             *bool              `json:"is_active"`
	CommentSectionClosed *bool              `json:"comment_section_closed"`
}

func (r UpdatePostRequest) Apply(p *Post) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Genre != nil {
		p.Genre = *r.Genre
	}
	if r.AgeRating != nil {
		p.AgeRating = *r.AgeRating
	}
	if r.SkillLevel != nil {
		p.SkillLevel = *r.SkillLevel
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.CommentSectionClosed != nil {
		p.CommentSectionClosed = *r.CommentSectionClosed
	}
}

// ListPostsRequest filters the post listing
type ListPostsRequest struct {
	Genre      *Genre             `form:"genre"`
	AgeRating  *AgeRating         `form:"age_rating"`
	SkillLevel *shared.SkillLevel `form:"skill_level"`
	AuthorID   *uuid.UUID         `form:"author_id"`
	Search     string             `form:"q"`
	Page       int                `form:"page"`
	Limit      int                `form:"limit"`
}

func (r ListPostsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Genre, validation.In(genres...).Error("unknown genre")),
		validation.Field(&r.AgeRating, validation.In(ageRatings...).Error("must be one of 14+, 16+, 18+")),
		validation.Field(&r.SkillLevel, validation.In(shared.SkillLevels...).Error("must be one of beginner, casual, professional")),
		validation.Field(&r.Search, validation.Length(0, 100)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// Stats are computed with COUNT queries at read time
type Stats struct {
	LikesCount    int  `json:"likes_count"`
	CommentsCount int  `json:"comments_count"`
	LikedByMe     bool `json:"liked_by_me"`
	SavedByMe     bool `json:"saved_by_me"`
}

// PostWithStats is what list queries return: the row, its counts and author
type PostWithStats struct {
	Post
	Stats
	Author accountModel.Summary
}

type PostResponse struct {
	ID                   uuid.UUID            `json:"id"`
	Author               accountModel.Summary `json:"author"`
	Title                string               `json:"title"`
	Genre                Genre                `json:"genre"`
	AgeRating            AgeRating            `json:"age_rating"`
	SkillLevel           shared.SkillLevel    `json:"skill_level"`
	Image                string               `json:"image"`
	Description          string               `json:"description"`
	IsActive             bool                 `json:"is_active"`
	CommentSectionClosed bool                 `json:"comment_section_closed"`
	CanComment           bool                 `json:"can_comment"`
	Stats
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse renders the post for a viewer
func (p *PostWithStats) ToResponse(viewer shared.Viewer) *PostResponse {
	return &PostResponse{
		ID:                   p.ID,
		Author:               p.Author,
		Title:                p.Title,
		Genre:                p.Genre,
		AgeRating:            p.AgeRating,
		SkillLevel:           p.SkillLevel,
		Image:                p.ImageRef(),
		Description:          p.Description,
		IsActive:             p.IsActive,
		CommentSectionClosed: p.CommentSectionClosed,
		CanComment:           p.CanComment(viewer.Authenticated()),
		Stats:                p.Stats,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

type ListPostsResponse struct {
	Posts []*PostResponse `json:"posts"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
