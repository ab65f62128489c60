package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"thriven-backend/internal/config"
	"thriven-backend/internal/domains/notification/service"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

// ================================================
// CLEANUP OLD READ NOTIFICATIONS JOB HANDLER
// ================================================

type CleanupOldNotificationsHandler struct {
	notificationService service.NotificationService
	workerConfig        config.WorkerConfig
}

func NewCleanupOldNotificationsHandler(
	notificationService service.NotificationService,
	workerConfig config.WorkerConfig,
) *CleanupOldNotificationsHandler {
	return &CleanupOldNotificationsHandler{
		notificationService: notificationService,
		workerConfig:        workerConfig,
	}
}

// ProcessTask deletes read notifications past the retention window.
// The payload may override the configured number of days.
func (h *CleanupOldNotificationsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CleanupNotificationsPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Warn("Cleanup payload unreadable, using configured retention", map[string]interface{}{
			"error": err.Error(),
		})
	}

	days := payload.RetentionDays
	if days <= 0 {
		days = h.workerConfig.NotificationRetentionDays
	}
	olderThan := time.Duration(days) * 24 * time.Hour

	logger.Info("Starting CleanupOldNotifications job", map[string]interface{}{
		"days": days,
	})

	deleted, err := h.notificationService.CleanupOldReadNotifications(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("cleanup old read notifications: %w", err)
	}

	logger.Info("Completed CleanupOldNotifications job", map[string]interface{}{
		"days":          days,
		"deleted_count": deleted,
	})

	return nil
}
