package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"thriven-backend/internal/domains/notification/model"
	"thriven-backend/internal/domains/notification/repository"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// NotificationService covers the in-app inbox of an account
type NotificationService interface {
	// Create persists a notification; called by the worker for queued notification:create tasks
	Create(ctx context.Context, accountID uuid.UUID, postID *uuid.UUID, message string) (*model.Notification, error)

	List(ctx context.Context, viewer shared.Viewer, req model.ListNotificationsRequest) (*model.ListNotificationsResponse, error)
	UnreadCount(ctx context.Context, viewer shared.Viewer) (int, error)
	MarkAsRead(ctx context.Context, viewer shared.Viewer, ids []uuid.UUID) (int, error)
	MarkAllAsRead(ctx context.Context, viewer shared.Viewer) (int, error)
	Delete(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error

	CleanupOldReadNotifications(ctx context.Context, olderThan time.Duration) (int, error)
}

// ================================================
// NOTIFICATION SERVICE IMPLEMENTATION
// ================================================

type notificationService struct {
	notifRepo repository.NotificationRepository
	now       func() time.Time
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		now:       time.Now,
	}
}

func (s *notificationService) Create(ctx context.Context, accountID uuid.UUID, postID *uuid.UUID, message string) (*model.Notification, error) {
	n := model.New(accountID, postID, message, s.now())
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	log.Debug().
		Str("notification_id", n.ID.String()).
		Str("account_id", accountID.String()).
		Msg("[NotificationService] notification stored")

	return n, nil
}

func (s *notificationService) List(ctx context.Context, viewer shared.Viewer, req model.ListNotificationsRequest) (*model.ListNotificationsResponse, error) {
	if !viewer.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	req.Page, req.Limit = utils.NormalizePage(req.Page, req.Limit, defaultLimit, maxLimit)

	notifications, total, err := s.notifRepo.List(ctx, viewer.AccountID, req)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifRepo.GetUnreadCount(ctx, viewer.AccountID)
	if err != nil {
		return nil, err
	}

	return &model.ListNotificationsResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
		Page:          req.Page,
		Limit:         req.Limit,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, viewer shared.Viewer) (int, error) {
	if !viewer.Authenticated() {
		return 0, shared.ErrUnauthorized
	}
	return s.notifRepo.GetUnreadCount(ctx, viewer.AccountID)
}

// MarkAsRead ignores ids that are unknown, foreign or already read
func (s *notificationService) MarkAsRead(ctx context.Context, viewer shared.Viewer, ids []uuid.UUID) (int, error) {
	if !viewer.Authenticated() {
		return 0, shared.ErrUnauthorized
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.notifRepo.MarkAsRead(ctx, ids, viewer.AccountID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, viewer shared.Viewer) (int, error) {
	if !viewer.Authenticated() {
		return 0, shared.ErrUnauthorized
	}
	return s.notifRepo.MarkAllAsRead(ctx, viewer.AccountID)
}

func (s *notificationService) Delete(ctx context.Context, viewer shared.Viewer, id uuid.UUID) error {
	if !viewer.Authenticated() {
		return shared.ErrUnauthorized
	}
	return s.notifRepo.Delete(ctx, id, viewer.AccountID)
}

// CleanupOldReadNotifications removes read notifications older than the retention window
func (s *notificationService) CleanupOldReadNotifications(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)

	deleted, err := s.notifRepo.DeleteOldRead(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	log.Info().
		Int("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("[NotificationService] old read notifications removed")

	return deleted, nil
}
