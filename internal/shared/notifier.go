package shared

import (
	"context"

	"github.com/google/uuid"
)

// Notifier hands a notification for an account to the background worker
type Notifier interface {
	Notify(ctx context.Context, accountID uuid.UUID, postID *uuid.UUID, message string) error
}
