package model

import "thriven-backend/internal/shared"

// ================================================
// ERROR CODES (for API responses)
// ================================================

const (
	ErrCodeNotificationNotFound = "NTF001"
)

var (
	ErrNotificationNotFound = shared.NewError(shared.ErrNotFound, ErrCodeNotificationNotFound, "notification not found")
)

// ErrTargetGone means the recipient or the referenced post was deleted before the notification was stored
var ErrTargetGone = shared.NewError(shared.ErrNotFound, "NTF002", "notification target no longer exists")
