package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriven-backend/internal/domains/engagement/service"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

type EngagementHandler struct {
	service service.Service
}

func NewEngagementHandler(service service.Service) *EngagementHandler {
	return &EngagementHandler{service: service}
}

// Like handles POST /posts/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.Like(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, status)
}

// Unlike handles DELETE /posts/:id/like
func (h *EngagementHandler) Unlike(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.Unlike(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// LikeStatus handles GET /posts/:id/likes
func (h *EngagementHandler) LikeStatus(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	status, err := h.service.LikeStatus(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// Save handles POST /posts/:id/save
func (h *EngagementHandler) Save(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	save, err := h.service.Save(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, save)
}

// Unsave handles DELETE /posts/:id/save
func (h *EngagementHandler) Unsave(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unsave(c.Request.Context(), middleware.CurrentViewer(c), postID); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSaved handles GET /accounts/me/saved
func (h *EngagementHandler) ListSaved(c *gin.Context) {
	page, limit := request.Page(c)

	result, err := h.service.ListSaved(c.Request.Context(), middleware.CurrentViewer(c), page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Posts, request.Meta(result.Page, result.Limit, result.Total))
}

func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	posts := rg.Group("/posts/:id")
	{
		posts.GET("/likes", optional, h.LikeStatus)
		posts.POST("/like", auth, h.Like)
		posts.DELETE("/like", auth, h.Unlike)
		posts.POST("/save", auth, h.Save)
		posts.DELETE("/save", auth, h.Unsave)
	}

	rg.GET("/accounts/me/saved", auth, h.ListSaved)
}
