package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriven-backend/internal/domains/follow/service"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

type FollowHandler struct {
	service service.Service
}

func NewFollowHandler(service service.Service) *FollowHandler {
	return &FollowHandler{service: service}
}

// Follow handles POST /accounts/:id/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	follow, err := h.service.Follow(c.Request.Context(), middleware.CurrentViewer(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, follow)
}

// Unfollow handles DELETE /accounts/:id/follow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), middleware.CurrentViewer(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Status handles GET /accounts/:id/follow
func (h *FollowHandler) Status(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.Status(c.Request.Context(), middleware.CurrentViewer(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// Followers handles GET /accounts/:id/followers
func (h *FollowHandler) Followers(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	page, limit := request.Page(c)

	result, err := h.service.Followers(c.Request.Context(), id, page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Accounts, request.Meta(result.Page, result.Limit, result.Total))
}

// Following handles GET /accounts/:id/following
func (h *FollowHandler) Following(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	page, limit := request.Page(c)

	result, err := h.service.Following(c.Request.Context(), id, page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Accounts, request.Meta(result.Page, result.Limit, result.Total))
}

func (h *FollowHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	accounts := rg.Group("/accounts/:id")
	{
		accounts.GET("/follow", optional, h.Status)
		accounts.POST("/follow", auth, h.Follow)
		accounts.DELETE("/follow", auth, h.Unfollow)
		accounts.GET("/followers", optional, h.Followers)
		accounts.GET("/following", optional, h.Following)
	}
}
