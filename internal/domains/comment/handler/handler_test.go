package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"thriven-backend/internal/domains/comment/model"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateComment(ctx context.Context, v shared.Viewer, postID uuid.UUID, req model.CreateCommentRequest) (*model.CommentResponse, error) {
	args := m.Called(ctx, v, postID, req)
	c, _ := args.Get(0).(*model.CommentResponse)
	return c, args.Error(1)
}

func (m *mockService) UpdateComment(ctx context.Context, v shared.Viewer, id uuid.UUID, req model.UpdateCommentRequest) (*model.CommentResponse, error) {
	args := m.Called(ctx, v, id, req)
	c, _ := args.Get(0).(*model.CommentResponse)
	return c, args.Error(1)
}

func (m *mockService) DeleteComment(ctx context.Context, v shared.Viewer, id uuid.UUID) error {
	return m.Called(ctx, v, id).Error(0)
}

func (m *mockService) ListComments(ctx context.Context, v shared.Viewer, postID uuid.UUID, page, limit int) (*model.ListCommentsResponse, error) {
	args := m.Called(ctx, v, postID, page, limit)
	r, _ := args.Get(0).(*model.ListCommentsResponse)
	return r, args.Error(1)
}

func (m *mockService) PinnedComments(ctx context.Context, v shared.Viewer, postID uuid.UUID) ([]*model.CommentResponse, error) {
	args := m.Called(ctx, v, postID)
	r, _ := args.Get(0).([]*model.CommentResponse)
	return r, args.Error(1)
}

func setup(svc *mockService, viewer shared.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setViewer := func(c *gin.Context) { middleware.SetViewer(c, viewer) }
	NewCommentHandler(svc).RegisterRoutes(r.Group("/api/v1"), setViewer, setViewer)
	return r
}

func TestCreateComment_PassesImportance(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "reader"}
	postID := uuid.New()
	svc.On("CreateComment", mock.Anything, viewer, postID, mock.MatchedBy(func(req model.CreateCommentRequest) bool {
		return req.IsPinned && req.Importance != nil && *req.Importance == model.ImportanceHigh
	})).Return(&model.CommentResponse{PostID: postID, Importance: model.ImportanceHigh, Label: "high"}, nil)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"text":"a thoughtful remark","is_pinned":true,"importance":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+postID.String()+"/comments", body)
	req.Header.Set("Content-Type", "application/json")
	setup(svc, viewer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateComment_ClosedSection(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "reader"}
	postID := uuid.New()
	svc.On("CreateComment", mock.Anything, viewer, postID, mock.Anything).Return(nil, model.ErrCommentingClosed)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+postID.String()+"/comments", strings.NewReader(`{"text":"a thoughtful remark"}`))
	req.Header.Set("Content-Type", "application/json")
	setup(svc, viewer).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateComment_MissingText(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/"+uuid.NewString()+"/comments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	setup(svc, shared.Anonymous).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListComments_Meta(t *testing.T) {
	svc := &mockService{}
	postID := uuid.New()
	svc.On("ListComments", mock.Anything, shared.Anonymous, postID, 1, 20).
		Return(&model.ListCommentsResponse{Comments: []*model.CommentResponse{}, Total: 0, Page: 1, Limit: 20}, nil)

	w := httptest.NewRecorder()
	setup(svc, shared.Anonymous).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+postID.String()+"/comments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"meta"`)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "stranger"}
	id := uuid.New()
	svc.On("DeleteComment", mock.Anything, viewer, id).Return(model.ErrNotCommenter)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+id.String(), nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
