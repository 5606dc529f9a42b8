package repository

import (
	"context"
	"time"

	"github.com/icebreakapp/radar-gateway/internal/domain"
)

type ChatRepository interface {
	// ListSummaries returns the viewer's chats with their latest message
	// and read watermark, newest activity first. Chats whose last activity
	// is older than the cutoff are excluded.
	ListSummaries(ctx context.Context, userID string, cutoff time.Time) ([]*domain.ChatSummary, error)

	GetChat(ctx context.Context, chatID string) (*domain.Chat, error)
	GetMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error)
	InsertMessage(ctx context.Context, msg *domain.Message) error

	// MarkRead advances the member's last_read_at watermark.
	MarkRead(ctx context.Context, chatID, userID string, at time.Time) error
}
