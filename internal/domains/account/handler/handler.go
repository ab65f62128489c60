package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriven-backend/internal/domains/account/model"
	"thriven-backend/internal/domains/account/service"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

type AccountHandler struct {
	service service.Service
}

func NewAccountHandler(service service.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !request.BindJSON(c, &req) {
		return
	}

	profile, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/accounts/"+profile.ID.String())
	response.Success(c, http.StatusCreated, profile)
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// GetProfile handles GET /accounts/:id
func (h *AccountHandler) GetProfile(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), middleware.CurrentViewer(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// GetMe handles GET /accounts/me
func (h *AccountHandler) GetMe(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	profile, err := h.service.GetProfile(c.Request.Context(), viewer, viewer.AccountID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdateMe handles PATCH /accounts/me
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	var req model.UpdateProfileRequest
	if !request.BindJSON(c, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentViewer(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UploadAvatar handles POST /accounts/me/avatar (multipart field "image")
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	data, ok := request.ReadImage(c, "image")
	if !ok {
		return
	}

	profile, err := h.service.UploadProfileImage(c.Request.Context(), middleware.CurrentViewer(c), data)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// DeleteMe handles DELETE /accounts/me
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	if err := h.service.DeleteAccount(c.Request.Context(), middleware.CurrentViewer(c)); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the account endpoints. auth rejects anonymous callers,
// optional attaches the viewer when a token is present.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/me", auth, h.GetMe)
		accounts.PATCH("/me", auth, h.UpdateMe)
		accounts.POST("/me/avatar", auth, h.UploadAvatar)
		accounts.DELETE("/me", auth, h.DeleteMe)
		accounts.GET("/:id", optional, h.GetProfile)
	}
}
