package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"thriven-backend/internal/domains/post/model"
	"thriven-backend/internal/domains/post/service"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/middleware"
	"thriven-backend/internal/shared/request"
	"thriven-backend/internal/shared/response"
)

type PostHandler struct {
	service service.Service
}

func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if !request.BindJSON(c, &req) {
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), middleware.CurrentViewer(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/posts/"+post.ID.String())
	response.Success(c, http.StatusCreated, post)
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), middleware.CurrentViewer(c), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ListPosts handles GET /posts?genre=&age_rating=&skill_level=&author_id=&q=&page=&limit=
func (h *PostHandler) ListPosts(c *gin.Context) {
	req, ok := listRequest(c)
	if !ok {
		return
	}

	result, err := h.service.ListPosts(c.Request.Context(), middleware.CurrentViewer(c), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Posts, request.Meta(result.Page, result.Limit, result.Total))
}

func listRequest(c *gin.Context) (model.ListPostsRequest, bool) {
	req := model.ListPostsRequest{Search: c.Query("q")}
	req.Page, req.Limit = request.Page(c)

	if v := c.Query("genre"); v != "" {
		genre := model.Genre(v)
		req.Genre = &genre
	}
	if v := c.Query("age_rating"); v != "" {
		rating := model.AgeRating(v)
		req.AgeRating = &rating
	}
	if v := c.Query("skill_level"); v != "" {
		level := shared.SkillLevel(v)
		req.SkillLevel = &level
	}
	if v := c.Query("author_id"); v != "" {
		authorID, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid author_id")
			return req, false
		}
		req.AuthorID = &authorID
	}
	return req, true
}

// Feed handles GET /posts/feed
func (h *PostHandler) Feed(c *gin.Context) {
	page, limit := request.Page(c)

	result, err := h.service.Feed(c.Request.Context(), middleware.CurrentViewer(c), page, limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, result.Posts, request.Meta(result.Page, result.Limit, result.Total))
}

// UpdatePost handles PATCH /posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePostRequest
	if !request.BindJSON(c, &req) {
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), middleware.CurrentViewer(c), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), middleware.CurrentViewer(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /posts/:id/image (multipart field "image")
func (h *PostHandler) UploadImage(c *gin.Context) {
	id, ok := request.ParamUUID(c, "id")
	if !ok {
		return
	}
	data, ok := request.ReadImage(c, "image")
	if !ok {
		return
	}

	post, err := h.service.UploadImage(c.Request.Context(), middleware.CurrentViewer(c), id, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ExportPosts handles GET /posts/export and streams an xlsx of the caller's posts
func (h *PostHandler) ExportPosts(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)

	f, count, err := h.service.ExportPosts(c.Request.Context(), viewer)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close export workbook")
		}
	}()

	filename := fmt.Sprintf("posts_%s_%s.xlsx", viewer.Username, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Total-Count", fmt.Sprintf("%d", count))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Str("account_id", viewer.AccountID.String()).Msg("Failed to write export workbook")
	}
}

func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	posts := rg.Group("/posts")
	{
		posts.GET("", optional, h.ListPosts)
		posts.POST("", auth, h.CreatePost)
		posts.GET("/feed", auth, h.Feed)
		posts.GET("/export", auth, h.ExportPosts)
		posts.GET("/:id", optional, h.GetPost)
		posts.PATCH("/:id", auth, h.UpdatePost)
		posts.DELETE("/:id", auth, h.DeletePost)
		posts.POST("/:id/image", auth, h.UploadImage)
	}
}
