package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

// ListChats handles GET /chats
func (h *ChatHandler) ListChats(c *gin.Context) {
	summaries, err := h.chatUseCase.ListSummaries(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "failed to list chats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": summaries})
}

// GetMessages handles GET /chats/:chat_id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.chatUseCase.GetMessages(c.Request.Context(), c.Param("chat_id"))
	if err != nil {
		h.writeError(c, err, "failed to get messages")
		return
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// SendMessage handles POST /chats/:chat_id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.chatUseCase.Send(c.Request.Context(), c.Param("chat_id"), req.Body)
	if err != nil {
		h.writeError(c, err, "failed to send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkRead handles POST /chats/:chat_id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	if err := h.chatUseCase.MarkRead(c.Request.Context(), c.Param("chat_id")); err != nil {
		h.writeError(c, err, "failed to mark chat read")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no active session"})
	case errors.Is(err, domain.ErrChatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "chat not found"})
	case errors.Is(err, domain.ErrNotChatMember):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a chat member"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
