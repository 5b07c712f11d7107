package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gh0stlung/Agri-Store/internal/ai"
	"github.com/gh0stlung/Agri-Store/internal/errx"
)

// ChatHandler fronts the single-shot AI assistant. Conversation state
// lives with the client, which resends history on every call.
type ChatHandler struct {
	assistant *ai.Assistant
}

func NewChatHandler(assistant *ai.Assistant) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

type chatRequest struct {
	Message string       `json:"message" binding:"required"`
	History []ai.Message `json:"history" binding:"dive"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.assistant.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		c.JSON(errx.Status(err), gin.H{"error": "assistant unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
