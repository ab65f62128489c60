package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/response"
	"thriven-backend/pkg/jwt"
)

const viewerKey = "viewer"

// TokenValidator is implemented by *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := viewerFromHeader(tokens, c.GetHeader("Authorization"))
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}
		if !viewer.Authenticated() {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// OptionalAuth attaches the viewer when a valid token is present and lets anonymous
// requests through. Invalid tokens are treated as anonymous.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, err := viewerFromHeader(tokens, c.GetHeader("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("Ignoring invalid token")
			viewer = shared.Anonymous
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// CurrentViewer returns the viewer set by the auth middlewares (anonymous if none)
func CurrentViewer(c *gin.Context) shared.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(shared.Viewer); ok {
			return viewer
		}
	}
	return shared.Anonymous
}

// SetViewer is used by tests and internal callers to impersonate an account
func SetViewer(c *gin.Context, viewer shared.Viewer) {
	c.Set(viewerKey, viewer)
}

func viewerFromHeader(tokens TokenValidator, header string) (shared.Viewer, error) {
	if header == "" {
		return shared.Anonymous, nil
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return shared.Anonymous, errInvalidHeader
	}

	claims, err := tokens.ValidateAccessToken(parts[1])
	if err != nil {
		return shared.Anonymous, errInvalidToken
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return shared.Anonymous, errInvalidToken
	}

	return shared.Viewer{AccountID: accountID, Username: claims.Username}, nil
}
