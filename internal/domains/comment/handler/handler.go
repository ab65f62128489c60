package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriven-backend/internal/domains/comment/model"
	"thriven-backend/internal/domains/comment/service"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

type CommentHandler struct {
	service service.Service
}

func NewCommentHandler(service service.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// CreateComment handles POST /posts/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req model.CreateCommentRequest
	if !request.BindJSON(c, &req) {
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), middleware.CurrentViewer(c), postID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

// ListComments handles GET /posts/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	page, limit := request.Page(c)

	result, err := h.service.ListComments(c.Request.Context(), middleware.CurrentViewer(c), postID, page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Comments, request.Meta(result.Page, result.Limit, result.Total))
}

// PinnedComments handles GET /posts/:id/comments/pinned
func (h *CommentHandler) PinnedComments(c *gin.Context) {
	postID, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.PinnedComments(c.Request.Context(), middleware.CurrentViewer(c), postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// UpdateComment handles PATCH /comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateCommentRequest
	if !request.BindJSON(c, &req) {
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), middleware.CurrentViewer(c), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// DeleteComment handles DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), middleware.CurrentViewer(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	posts := rg.Group("/posts/:id/comments")
	{
		posts.GET("", optional, h.ListComments)
		posts.POST("", auth, h.CreateComment)
		posts.GET("/pinned", optional, h.PinnedComments)
	}

	comments := rg.Group("/comments")
	{
		comments.PATCH("/:id", auth, h.UpdateComment)
		comments.DELETE("/:id", auth, h.DeleteComment)
	}
}
