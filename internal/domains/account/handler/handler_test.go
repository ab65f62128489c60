package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/response"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*model.LoginResponse)
	return r, args.Error(1)
}

func (m *mockService) GetProfile(ctx context.Context, viewer shared.Viewer, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, viewer, id)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockService) UpdateProfile(ctx context.Context, viewer shared.Viewer, req model.UpdateProfileRequest) (*model.Profile, error) {
	args := m.Called(ctx, viewer, req)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockService) UploadProfileImage(ctx context.Context, viewer shared.Viewer, data []byte) (*model.Profile, error) {
	args := m.Called(ctx, viewer, data)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *mockService) DeleteAccount(ctx context.Context, viewer shared.Viewer) error {
	return m.Called(ctx, viewer).Error(0)
}

func setup(svc *mockService, viewer shared.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if !viewer.Authenticated() {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		middleware.SetViewer(c, viewer)
	}
	optional := func(c *gin.Context) { middleware.SetViewer(c, viewer) }
	NewAccountHandler(svc).RegisterRoutes(r.Group("/api/v1"), auth, optional)
	return r
}

func TestRegister_Created(t *testing.T) {
	svc := &mockService{}
	id := uuid.New()
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req model.RegisterRequest) bool {
		return req.Username == "writer"
	})).Return(&model.Profile{ID: id, Username: "writer"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"writer","password":"correct-horse"}`))
	req.Header.Set("Content-Type", "application/json")
	setup(svc, shared.Anonymous).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/accounts/"+id.String(), w.Header().Get("Location"))
	svc.AssertExpectations(t)
}

func TestRegister_ValidationError(t *testing.T) {
	svc := &mockService{}
	svc.On("Register", mock.Anything, mock.Anything).
		Return(nil, validation.Errors{"password": validation.NewError("validation_length_out_of_range", "password must be 8-128 characters")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"username":"writer","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	setup(svc, shared.Anonymous).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Contains(t, errBody["details"], "password")
}

func TestGetProfile(t *testing.T) {
	svc := &mockService{}
	id := uuid.New()
	svc.On("GetProfile", mock.Anything, shared.Anonymous, id).Return(&model.Profile{ID: id}, nil)
	svc.On("GetProfile", mock.Anything, shared.Anonymous, mock.Anything).Return(nil, model.ErrAccountNotFound)

	r := setup(svc, shared.Anonymous)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMe_RequiresAuth(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	setup(svc, shared.Anonymous).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	viewer := shared.Viewer{AccountID: uuid.New(), Username: "writer"}
	svc.On("DeleteAccount", mock.Anything, viewer).Return(nil)
	w = httptest.NewRecorder()
	setup(svc, viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/me", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
