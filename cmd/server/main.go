package main

import (
	"flag"
	"fmt"
	"os"

	"newsrelay/internal/api"
	"newsrelay/internal/assistant"
	"newsrelay/internal/config"
	"newsrelay/internal/llm"
	"newsrelay/internal/logging"
	"newsrelay/internal/news"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.json", "optional JSON config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logCloser := logging.Init(cfg.Logging)
	defer logCloser.Close()

	if cfg.GNews.APIKey == "" {
		logrus.Warn("GNEWS_API_KEY is empty; headline requests will be rejected upstream")
	}
	if cfg.Ollama.Model == "" {
		logrus.Warn("OLLAMA_MODEL is empty")
	}

	ollama := llm.NewClient(cfg.Ollama)
	svc := assistant.NewService(news.NewClient(cfg.GNews), ollama)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.SetupRouter(cfg, svc, ollama)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.WithFields(logrus.Fields{
		"addr":   addr,
		"model":  cfg.Ollama.Model,
		"ollama": cfg.Ollama.BaseURL,
	}).Infof("Starting Dynamic News RAG Bot on %s%s", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Server error: %v", err)
	}
}
