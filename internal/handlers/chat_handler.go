package handlers

import (
	"net/http"

	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.chatService.Respond(req.Message)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to process message")
		return
	}
	respondOK(c, http.StatusOK, reply)
}
