package job

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"thriven-backend/internal/domains/notification/service"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

// ================================================
// CREATE NOTIFICATION JOB HANDLER
// ================================================

type CreateNotificationHandler struct {
	notificationService service.NotificationService
}

func NewCreateNotificationHandler(notificationService service.NotificationService) *CreateNotificationHandler {
	return &CreateNotificationHandler{notificationService: notificationService}
}

// ProcessTask stores the notification carried by the task.
// Malformed payloads and vanished targets are not retried.
func (h *CreateNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CreateNotificationPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	accountID, err := uuid.Parse(payload.AccountID)
	if err != nil {
		return fmt.Errorf("invalid account_id %q: %w", payload.AccountID, asynq.SkipRetry)
	}

	var postID *uuid.UUID
	if payload.PostID != nil {
		id, err := uuid.Parse(*payload.PostID)
		if err != nil {
			return fmt.Errorf("invalid post_id %q: %w", *payload.PostID, asynq.SkipRetry)
		}
		postID = &id
	}

	n, err := h.notificationService.Create(ctx, accountID, postID, payload.Message)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) || errors.Is(err, shared.ErrNotFound) {
			logger.Warn("Dropping notification", map[string]interface{}{
				"account_id": payload.AccountID,
				"error":      err.Error(),
			})
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("create notification: %w", err)
	}

	logger.Info("Notification created", map[string]interface{}{
		"notification_id": n.ID.String(),
		"account_id":      n.AccountID.String(),
	})
	return nil
}
