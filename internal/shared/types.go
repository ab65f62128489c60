package shared

// Task types processed by the asynq worker
const (
	TypeCreateNotification   = "notification:create"
	TypeCleanupNotifications = "notification:cleanup_read"
	TypeProcessImage         = "media:process_image"
	TypeDeleteImages         = "media:delete_images"
)

// Queue names
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// CreateNotificationPayload is the body of a TypeCreateNotification task
type CreateNotificationPayload struct {
	AccountID string  `json:"account_id"`
	PostID    *string `json:"post_id,omitempty"`
	Message   string  `json:"message"`
}

// ProcessImagePayload is the body of a TypeProcessImage task
type ProcessImagePayload struct {
	ObjectKey string `json:"object_key"`
}

// DeleteImagesPayload is the body of a TypeDeleteImages task
type DeleteImagesPayload struct {
	Prefix string `json:"prefix"`
}

// CleanupNotificationsPayload is the body of a TypeCleanupNotifications task
type CleanupNotificationsPayload struct {
	RetentionDays int `json:"retention_days"`
}
