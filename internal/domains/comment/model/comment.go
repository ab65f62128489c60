package model

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Importance ranks pinned comments
type Importance int

const (
	ImportanceLow      Importance = 1
	ImportanceNormal   Importance = 2
	ImportanceHigh     Importance = 3
	ImportanceCritical Importance = 4
)

var importanceLevels = []interface{}{ImportanceLow, ImportanceNormal, ImportanceHigh, ImportanceCritical}

func (i Importance) String() string {
	switch i {
	case ImportanceLow:
		return "low"
	case ImportanceNormal:
		return "normal"
	case ImportanceHigh:
		return "high"
	case ImportanceCritical:
		return "critical"
	}
	return "unknown"
}

type Comment struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	AccountID  uuid.UUID  `json:"account_id"`
	Text       string     `json:"text"`
	IsPinned   bool       `json:"is_pinned"`
	Importance Importance `json:"importance"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Comment) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Text, validation.Required, validation.RuneLength(10, 1000)),
		validation.Field(&c.Importance, validation.Required, validation.In(importanceLevels...).Error("must be between 1 and 4")),
	)
}

// EnforcePin clears the pin when the commenter is not the post's author.
// Returns true when the flag was cleared.
func (c *Comment) EnforcePin(postAuthorID uuid.UUID) bool {
	if c.IsPinned && c.AccountID != postAuthorID {
		c.IsPinned = false
		return true
	}
	return false
}

// SortPinned orders pinned comments by importance, highest first, then oldest first
func SortPinned(comments []*Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].Importance != comments[j].Importance {
			return comments[i].Importance > comments[j].Importance
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

// Pinned returns the pinned comments of a set in pinned order
func Pinned(comments []*Comment) []*Comment {
	out := make([]*Comment, 0)
	for _, c := range comments {
		if c.IsPinned {
			out = append(out, c)
		}
	}
	SortPinned(out)
	return out
}
