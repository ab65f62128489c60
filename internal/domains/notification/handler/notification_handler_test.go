package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"thriven-backend/internal/domains/notification/model"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, accountID uuid.UUID, postID *uuid.UUID, message string) (*model.Notification, error) {
	args := m.Called(ctx, accountID, postID, message)
	n, _ := args.Get(0).(*model.Notification)
	return n, args.Error(1)
}

func (m *mockService) List(ctx context.Context, v shared.Viewer, req model.ListNotificationsRequest) (*model.ListNotificationsResponse, error) {
	args := m.Called(ctx, v, req)
	r, _ := args.Get(0).(*model.ListNotificationsResponse)
	return r, args.Error(1)
}

func (m *mockService) UnreadCount(ctx context.Context, v shared.Viewer) (int, error) {
	args := m.Called(ctx, v)
	return args.Int(0), args.Error(1)
}

func (m *mockService) MarkAsRead(ctx context.Context, v shared.Viewer, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, v, ids)
	return args.Int(0), args.Error(1)
}

func (m *mockService) MarkAllAsRead(ctx context.Context, v shared.Viewer) (int, error) {
	args := m.Called(ctx, v)
	return args.Int(0), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, v shared.Viewer, id uuid.UUID) error {
	return m.Called(ctx, v, id).Error(0)
}

func (m *mockService) CleanupOldReadNotifications(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

func setup(svc *mockService, viewer shared.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewNotificationHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { middleware.SetViewer(c, viewer) })
	return r
}

func TestListNotifications_UnreadFilter(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "me"}
	svc.On("List", mock.Anything, viewer, model.ListNotificationsRequest{UnreadOnly: true, Page: 1, Limit: 20}).
		Return(&model.ListNotificationsResponse{Notifications: []*model.Notification{}, UnreadCount: 4, Page: 1, Limit: 20}, nil)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unread=true", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread_count":4`)
	svc.AssertExpectations(t)
}

func TestMarkAsRead(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "me"}
	id := uuid.New()
	svc.On("MarkAsRead", mock.Anything, viewer, []uuid.UUID{id}).Return(1, nil)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"ids":["` + id.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read", body)
	req.Header.Set("Content-Type", "application/json")
	setup(svc, viewer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":1`)
}

func TestDeleteNotification_NotFound(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "me"}
	id := uuid.New()
	svc.On("Delete", mock.Anything, viewer, id).Return(model.ErrNotificationNotFound)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/notifications/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
