package model

import (
	"time"

	"github.com/google/uuid"

	accountModel "thriven-backend/internal/domains/account/model"
)

type CreateCommentRequest struct {
	Text       string      `json:"text" binding:"required"`
	IsPinned   bool        `json:"is_pinned"`
	Importance *Importance `json:"importance"`
}

type UpdateCommentRequest struct {
	Text       *string     `json:"text"`
	IsPinned   *bool       `json:"is_pinned"`
	Importance *Importance `json:"importance"`
}

func (r UpdateCommentRequest) Apply(c *Comment) {
	if r.Text != nil {
		c.Text = *r.Text
	}
	if r.IsPinned != nil {
		c.IsPinned = *r.IsPinned
	}
	if r.Importance != nil {
		c.Importance = *r.Importance
	}
}

// CommentWithAuthor is what list queries return
type CommentWithAuthor struct {
	Comment
	Author accountModel.Summary
}

type CommentResponse struct {
	ID         uuid.UUID            `json:"id"`
	PostID     uuid.UUID            `json:"post_id"`
	Author     accountModel.Summary `json:"author"`
	Text       string               `json:"text"`
	IsPinned   bool                 `json:"is_pinned"`
	Importance Importance           `json:"importance"`
	Label      string               `json:"importance_label"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func (c *CommentWithAuthor) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		Author:     c.Author,
		Text:       c.Text,
		IsPinned:   c.IsPinned,
		Importance: c.Importance,
		Label:      c.Importance.String(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type ListCommentsResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}
