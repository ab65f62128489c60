package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thriven-backend/internal/shared/middleware"
	"thriven-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(c.JWTManager)
	optional := middleware.OptionalAuth(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.AccountHandler.RegisterRoutes(v1, auth, optional)
		c.FollowHandler.RegisterRoutes(v1, auth, optional)
		c.PostHandler.RegisterRoutes(v1, auth, optional)
		c.CommentHandler.RegisterRoutes(v1, auth, optional)
		c.EngagementHandler.RegisterRoutes(v1, auth, optional)
		c.NotificationHandler.RegisterRoutes(v1, auth)
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler reports database, cache and object storage reachability
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		} else {
			stats := appCtx.DB.Pool.Stat()
			checks["database"] = gin.H{
				"status":               "ok",
				"total_connections":    stats.TotalConns(),
				"idle_connections":     stats.IdleConns(),
				"acquired_connections": stats.AcquiredConns(),
			}
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Set(ctx, "health:ping", time.Now().Unix(), 10*time.Second); err != nil {
			// degraded, not down
			cacheStatus = err.Error()
		}
		checks["cache"] = cacheStatus

		if err := appCtx.Storage.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks["storage"] = err.Error()
		} else {
			checks["storage"] = "ok"
		}

		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"service": appCtx.Config.App.Name,
			"version": appCtx.Config.App.Version,
			"checks":  checks,
		})
	}
}
