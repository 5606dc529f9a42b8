package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icebreakapp/radar-gateway/internal/auth"
)

type SessionHandler struct {
	sessions *auth.SessionManager
}

func NewSessionHandler(sessions *auth.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type SessionResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no active session"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	})
}
