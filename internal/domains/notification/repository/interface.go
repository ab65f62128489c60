package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"thriven-backend/internal/domains/notification/model"
)

// ================================================
// NOTIFICATION REPOSITORY INTERFACE
// ================================================

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)

	// List returns the account's notifications, newest first
	List(ctx context.Context, accountID uuid.UUID, filters model.ListNotificationsRequest) ([]*model.Notification, int, error)
	GetUnreadCount(ctx context.Context, accountID uuid.UUID) (int, error)

	// MarkAsRead only touches notifications owned by accountID
	MarkAsRead(ctx context.Context, ids []uuid.UUID, accountID uuid.UUID) (int, error)
	MarkAllAsRead(ctx context.Context, accountID uuid.UUID) (int, error)

	Delete(ctx context.Context, id, accountID uuid.UUID) error
	DeleteOldRead(ctx context.Context, before time.Time) (int, error)
}
