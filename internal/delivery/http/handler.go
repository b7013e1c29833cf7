package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storechat/backend/internal/domain"
	"github.com/storechat/backend/internal/infrastructure/dialogflow"
)

// ChatUsecase defines the chat operations the handler depends on
type ChatUsecase interface {
	Chat(ctx context.Context, request *domain.ChatRequest) (*domain.ChatReply, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chatService ChatUsecase
}

// NewHandler creates a new HTTP handler
func NewHandler(chatService ChatUsecase) *Handler {
	return &Handler{chatService: chatService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storechat-backend",
		"version": "1.0.0",
	})
}

// Chat handles one chat turn from the storefront UI
func (h *Handler) Chat(c *gin.Context) {
	if h.chatService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Chat service not initialized. Please check your credentials.",
		})
		return
	}

	var request domain.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message is required and must be a string",
		})
		return
	}

	reply, err := h.chatService.Chat(c.Request.Context(), &request)
	if err != nil {
		h.renderChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// renderChatError maps usecase errors to HTTP responses. Agent failures get
// the fixed fallback text so the UI never shows a broken render.
func (h *Handler) renderChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message is required and must be a string",
		})
	case errors.Is(err, domain.ErrDialogflowFailure), errors.Is(err, domain.ErrEmptyResponse):
		log.Printf("[HTTP] agent call failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to process your request. Please try again later.",
			"message": dialogflow.FallbackText,
		})
	default:
		log.Printf("[HTTP] chat failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process your request. Please try again later.",
		})
	}
}
