package api

import (
	"strings"

	"newsrelay/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, svc Asker, pinger Pinger) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware(), requestLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	subpath := cfg.Server.Subpath // e.g. "/news", empty mounts at root

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/ready", readyHandler(pinger))
		group.GET("/config", configHandler(cfg))

		// --- Headline-grounded question answering ---
		group.GET("/ask", AskHandler(svc))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
	}
	// env lists arrive split on "," but untrimmed
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
		allowed = append(allowed, o)
	}
	if len(allowed) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = allowed
	return cc
}
