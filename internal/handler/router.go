package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/config"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/ingest"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/service"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
)

// Deps carries the constructed components the router wires into handlers.
type Deps struct {
	ChatService *service.ChatService
	Pipeline    *ingest.Pipeline
	Store       store.Store
	Index       index.Index
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", healthCheck)
	r.GET("/ready", readinessCheck)
	r.GET("/live", livenessCheck)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Policy Chat API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	chatHandler := NewChatHandler(deps.ChatService, cfg.RequestTimeout)
	r.POST("/chat", chatHandler.Chat)

	adminHandler := NewAdminHandler(deps.Pipeline, deps.Store, deps.Index)
	v1 := r.Group("/v1")
	{
		v1.POST("/documents", adminHandler.UploadDocument)
		v1.GET("/documents", adminHandler.ListDocuments)
		v1.POST("/reindex", adminHandler.Reindex)
		v1.GET("/stats", adminHandler.Stats)
	}

	return r
}

// respondError maps a classified error onto an HTTP status with a stable
// message; internals never reach the client.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.Message(err)})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "policy-chat",
	})
}

func readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
