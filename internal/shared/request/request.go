package request

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"thriven-backend/internal/shared/response"
	"thriven-backend/internal/shared/utils"
)

// MaxImageSize is the largest accepted upload
const MaxImageSize = 5 << 20

// Pagination defaults
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// BindJSON decodes the body into dst, writing a 400 on failure
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// ParamUUID parses a path parameter, writing a 400 on failure
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// Page reads ?page=&limit= and normalizes them
func Page(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	return utils.NormalizePage(page, limit, DefaultLimit, MaxLimit)
}

// Meta builds the pagination block of a list response
func Meta(page, limit, total int) *response.Meta {
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	}
}

// ReadImage reads the multipart file under field, capped at MaxImageSize
func ReadImage(c *gin.Context, field string) ([]byte, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("missing file field %q", field))
		return nil, false
	}
	if header.Size > MaxImageSize {
		response.BadRequest(c, "image must not exceed 5MB")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "cannot read upload")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		response.BadRequest(c, "cannot read upload")
		return nil, false
	}
	if len(data) > MaxImageSize {
		response.BadRequest(c, "image must not exceed 5MB")
		return nil, false
	}
	return data, true
}
