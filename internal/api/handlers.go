package api

import (
	"context"
	"net/http"
	"time"

	"newsrelay/internal/config"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the inference server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
	})
}

// GET /ready
func readyHandler(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"ollama": gin.H{
				"base_url": cfg.Ollama.BaseURL,
				"model":    cfg.Ollama.Model,
			},
			"gnews": gin.H{
				"url":          cfg.GNews.URL,
				"language":     cfg.GNews.Language,
				"max_articles": cfg.GNews.MaxArticles,
			},
		})
	}
}
