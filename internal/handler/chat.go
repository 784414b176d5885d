package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/service"
)

type ChatHandler struct {
	svc     *service.ChatService
	timeout time.Duration
}

func NewChatHandler(svc *service.ChatService, timeout time.Duration) *ChatHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatHandler{svc: svc, timeout: timeout}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.KindInvalidRequest, "invalid request body"))
		return
	}

	// Deriving from the request context propagates client disconnects to
	// in-flight upstream calls.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp, err := h.svc.Handle(ctx, req.Question)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
