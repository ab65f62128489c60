package model

import (
	"time"

	"github.com/google/uuid"

	postModel "thriven-backend/internal/domains/post/model"
)

// Like links an account to a post it likes; one per (account, post)
type Like struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	PostID    uuid.UUID `json:"post_id"`
	LikedAt   time.Time `json:"liked_at"`
}

// Save bookmarks a post for an account; one per (account, post)
type Save struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	PostID    uuid.UUID `json:"post_id"`
	SavedAt   time.Time `json:"saved_at"`
}

// Kind names the engagement in metrics and logs
type Kind string

const (
	KindLike Kind = "like"
	KindSave Kind = "save"
)

// SavedPost is an entry of the caller's saved list
type SavedPost struct {
	PostID         uuid.UUID           `json:"post_id"`
	Title          string              `json:"title"`
	Genre          postModel.Genre     `json:"genre"`
	AgeRating      postModel.AgeRating `json:"age_rating"`
	Image          string              `json:"image"`
	AuthorID       uuid.UUID           `json:"author_id"`
	AuthorUsername string              `json:"author_username"`
	SavedAt        time.Time           `json:"saved_at"`
}

type LikeStatus struct {
	PostID     uuid.UUID `json:"post_id"`
	LikesCount int       `json:"likes_count"`
	LikedByMe  bool      `json:"liked_by_me"`
}

type ListSavedResponse struct {
	Posts []*SavedPost `json:"posts"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}
