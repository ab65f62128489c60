package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thriven-backend/internal/domains/notification/model"
	"thriven-backend/internal/domains/notification/service"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

// ================================================
// NOTIFICATION HANDLER
// ================================================

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ================================================
// LIST NOTIFICATIONS
// GET /api/v1/notifications?unread=true
// ================================================

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	page, limit := request.Page(c)
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	result, err := h.notificationService.List(c.Request.Context(), middleware.CurrentViewer(c), model.ListNotificationsRequest{
		UnreadOnly: unreadOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result, request.Meta(result.Page, result.Limit, result.Total))
}

// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), middleware.CurrentViewer(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.UnreadCountResponse{UnreadCount: count})
}

// POST /api/v1/notifications/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	var req model.MarkReadRequest
	if !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.notificationService.MarkAsRead(c.Request.Context(), middleware.CurrentViewer(c), req.IDs)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.MarkReadResponse{Updated: updated})
}

// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context(), middleware.CurrentViewer(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.MarkReadResponse{Updated: updated})
}

// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), middleware.CurrentViewer(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the inbox; every route requires authentication
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	notifications := rg.Group("/notifications", auth)
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/read", h.MarkAsRead)
		notifications.POST("/read-all", h.MarkAllAsRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}
