package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"fsbot/internal/logging"
)

func SessionRouter(rg *gin.RouterGroup, h *SessionHandler) {
	rg.POST("", h.Create)
	rg.POST("/:id/utterances", h.Utterance)
	rg.GET("/:id/transcript", h.Transcript)
	rg.DELETE("/:id", h.Delete)
}

func SetupRoutes(router *gin.Engine, store *Store) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": store.Len()})
	})

	SessionRouter(router.Group("/sessions"), NewSessionHandler(store))
}

// requestLogger writes one api log line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.APIDebug("%s %s -> %d (%v)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
