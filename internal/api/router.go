// Package api wires the HTTP routes and middleware.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GintasS/social-media-post-generator/internal/handlers"
	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/session"
	"github.com/GintasS/social-media-post-generator/internal/telemetry"
)

func NewRouter(sessions *session.Manager, tel *telemetry.Provider, log logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(corsMiddleware())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(tel.Handler()))

	sessionHandler := handlers.NewSessionHandler(sessions, tel, log)

	v1 := router.Group("/api/v1")
	sess := v1.Group("/sessions")
	sess.POST("", sessionHandler.Create)
	sess.GET("/:id", sessionHandler.Get)
	sess.DELETE("/:id", sessionHandler.Delete)
	sess.PATCH("/:id/draft", sessionHandler.UpdateDraft)
	sess.PUT("/:id/options", sessionHandler.UpdateOptions)
	sess.PUT("/:id/settings", sessionHandler.UpdateSettings)
	sess.POST("/:id/generate", sessionHandler.Generate)
	sess.POST("/:id/view", sessionHandler.SwitchView)
	sess.GET("/:id/history", sessionHandler.History)
	sess.DELETE("/:id/history", sessionHandler.ClearHistory)
	sess.POST("/:id/carousel/next", sessionHandler.CarouselNext)
	sess.POST("/:id/carousel/previous", sessionHandler.CarouselPrevious)
	sess.PUT("/:id/carousel", sessionHandler.CarouselGoTo)
	sess.POST("/:id/copied", sessionHandler.MarkCopied)

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
