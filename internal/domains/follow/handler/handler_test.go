package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountModel "thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/follow/model"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Follow(ctx context.Context, v shared.Viewer, id uuid.UUID) (*model.Follow, error) {
	args := m.Called(ctx, v, id)
	f, _ := args.Get(0).(*model.Follow)
	return f, args.Error(1)
}

func (m *mockService) Unfollow(ctx context.Context, v shared.Viewer, id uuid.UUID) error {
	return m.Called(ctx, v, id).Error(0)
}

func (m *mockService) Status(ctx context.Context, v shared.Viewer, id uuid.UUID) (*model.Status, error) {
	args := m.Called(ctx, v, id)
	s, _ := args.Get(0).(*model.Status)
	return s, args.Error(1)
}

func (m *mockService) Followers(ctx context.Context, id uuid.UUID, page, limit int) (*model.ListResponse, error) {
	args := m.Called(ctx, id, page, limit)
	r, _ := args.Get(0).(*model.ListResponse)
	return r, args.Error(1)
}

func (m *mockService) Following(ctx context.Context, id uuid.UUID, page, limit int) (*model.ListResponse, error) {
	args := m.Called(ctx, id, page, limit)
	r, _ := args.Get(0).(*model.ListResponse)
	return r, args.Error(1)
}

func setup(svc *mockService, viewer shared.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setViewer := func(c *gin.Context) { middleware.SetViewer(c, viewer) }
	NewFollowHandler(svc).RegisterRoutes(r.Group("/api/v1"), setViewer, setViewer)
	return r
}

func TestFollow_SelfIsBadRequest(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "alice"}
	svc.On("Follow", mock.Anything, viewer, viewer.AccountID).Return(nil, validation.Errors{
		"followed_id": validation.NewError("validation_self_follow", "an account cannot follow itself"),
	})

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/"+viewer.AccountID.String()+"/follow", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "followed_id")
}

func TestFollow_Duplicate(t *testing.T) {
	svc := &mockService{}
	viewer := shared.Viewer{AccountID: uuid.New(), Username: "alice"}
	target := uuid.New()
	svc.On("Follow", mock.Anything, viewer, target).Return(nil, model.ErrAlreadyFollowing)

	w := httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts/"+target.String()+"/follow", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFollowers_Paginated(t *testing.T) {
	svc := &mockService{}
	target := uuid.New()
	follower := accountModel.Summary{ID: uuid.New(), Username: "bob", ProfileImage: accountModel.DefaultProfileImage}
	svc.On("Followers", mock.Anything, target, 2, 1).Return(&model.ListResponse{
		Accounts: []*model.Entry{{Account: follower}},
		Total:    3, Page: 2, Limit: 1,
	}, nil)

	w := httptest.NewRecorder()
	setup(svc, shared.Anonymous).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+target.String()+"/followers?page=2&limit=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []model.Entry `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "bob", body.Data[0].Account.Username)
	assert.Equal(t, 3, body.Meta.Total)
}
