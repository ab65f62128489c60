package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"thriven-backend/internal/domains/engagement/model"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Like(ctx context.Context, v shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	args := m.Called(ctx, v, postID)
	s, _ := args.Get(0).(*model.LikeStatus)
	return s, args.Error(1)
}

func (m *mockService) Unlike(ctx context.Context, v shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	args := m.Called(ctx, v, postID)
	s, _ := args.Get(0).(*model.LikeStatus)
	return s, args.Error(1)
}

func (m *mockService) LikeStatus(ctx context.Context, v shared.Viewer, postID uuid.UUID) (*model.LikeStatus, error) {
	args := m.Called(ctx, v, postID)
	s, _ := args.Get(0).(*model.LikeStatus)
	return s, args.Error(1)
}

func (m *mockService) Save(ctx context.Context, v shared.Viewer, postID uuid.UUID) (*model.Save, error) {
	args := m.Called(ctx, v, postID)
	s, _ := args.Get(0).(*model.Save)
	return s, args.Error(1)
}

func (m *mockService) Unsave(ctx context.Context, v shared.Viewer, postID uuid.UUID) error {
	return m.Called(ctx, v, postID).Error(0)
}

func (m *mockService) ListSaved(ctx context.Context, v shared.Viewer, page, limit int) (*model.ListSavedResponse, error) {
	args := m.Called(ctx, v, page, limit)
	r, _ := args.Get(0).(*model.ListSavedResponse)
	return r, args.Error(1)
}

func setup(svc *mockService, viewer shared.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setViewer := func(c *gin.Context) { middleware.SetViewer(c, viewer) }
	NewEngagementHandler(svc).RegisterRoutes(r.Group("/api/v1"), setViewer, setViewer)
	return r
}

func TestLike_Created(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "reader"}
	postID := uuid.New()
	svc.On("Like", mock.Anything, viewer, postID).Return(&model.LikeStatus{PostID: postID, LikesCount: 1, LikedByMe: true}, nil)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+postID.String()+"/like", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"liked_by_me":true`)
	svc.AssertExpectations(t)
}

func TestLike_DuplicateIsConflict(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "reader"}
	postID := uuid.New()
	svc.On("Like", mock.Anything, viewer, postID).Return(nil, model.ErrAlreadyLiked)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+postID.String()+"/like", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnsave_NoContent(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "reader"}
	postID := uuid.New()
	svc.On("Unsave", mock.Anything, viewer, postID).Return(nil)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/posts/"+postID.String()+"/save", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLike_BadPostID(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	setup(svc, shared.Anonymous).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/posts/not-a-uuid/like", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
}
