package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"thriven-backend/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope and logs it with the request context
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("route", c.FullPath()).
				Interface("panic", rec).
				Msg("Panic recovered")

			c.Abort()
			if !c.Writer.Written() {
				response.InternalServerError(c, "Internal server error")
			}
		}()

		c.Next()
	}
}
