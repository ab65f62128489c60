package main

import (
	"context"

	"github.com/hibiken/asynq"

	notificationJob "thriven-backend/internal/domains/notification/job"
	"thriven-backend/internal/infrastructure/queue/handlers"
	"thriven-backend/internal/shared"
	"thriven-backend/pkg/container"
)

type taskFunc func(ctx context.Context, t *asynq.Task) error

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Notification handlers
	createNotification *notificationJob.CreateNotificationHandler
	cleanupOld         *notificationJob.CleanupOldNotificationsHandler

	// Media handlers
	processImage taskFunc
	deleteImages taskFunc
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		createNotification: notificationJob.NewCreateNotificationHandler(c.NotificationService),
		cleanupOld:         notificationJob.NewCleanupOldNotificationsHandler(c.NotificationService, c.Config.Worker),

		processImage: handlers.ProcessImageHandler(c.Media),
		deleteImages: handlers.DeleteImagesHandler(c.Media),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Notification tasks
	mux.HandleFunc(shared.TypeCreateNotification, h.createNotification.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupNotifications, h.cleanupOld.ProcessTask)

	// Media tasks
	mux.HandleFunc(shared.TypeProcessImage, h.processImage)
	mux.HandleFunc(shared.TypeDeleteImages, h.deleteImages)
}
