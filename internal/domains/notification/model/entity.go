package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"thriven-backend/internal/shared/utils"
)

// MaxMessageLength is the longest message stored; longer ones are truncated
const MaxMessageLength = 255

// ================================================
// NOTIFICATION ENTITY
// ================================================

// Notification tells an account that something happened, optionally about a post
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	AccountID uuid.UUID  `json:"account_id"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

// New builds an unread notification, truncating the message to MaxMessageLength runes
func New(accountID uuid.UUID, postID *uuid.UUID, message string, now time.Time) *Notification {
	return &Notification{
		ID:        uuid.New(),
		AccountID: accountID,
		PostID:    postID,
		Message:   utils.Truncate(message, MaxMessageLength),
		CreatedAt: now,
	}
}

func (n *Notification) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.AccountID, validation.Required),
		validation.Field(&n.Message, validation.Required, validation.RuneLength(1, MaxMessageLength)),
	)
}
