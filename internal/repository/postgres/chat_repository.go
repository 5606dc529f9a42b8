package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/jmoiron/sqlx"
)

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// ListSummaries resolves each chat to its peer, latest message and the
// viewer's read watermark in one query, newest activity first.
func (r *chatRepository) ListSummaries(ctx context.Context, userID string, cutoff time.Time) ([]*domain.ChatSummary, error) {
	var summaries []*domain.ChatSummary
	err := r.db.SelectContext(ctx, &summaries, `
		WITH my_chats AS (
		    SELECT c.id,
		           CASE WHEN c.user_a_id = $1 THEN c.user_b_id ELSE c.user_a_id END AS peer_id
		    FROM chats c
		    WHERE c.user_a_id = $1 OR c.user_b_id = $1
		),
		latest AS (
		    SELECT DISTINCT ON (m.chat_id)
		           m.chat_id, m.body, m.sender_id, m.created_at
		    FROM messages m
		    JOIN my_chats mc ON mc.id = m.chat_id
		    ORDER BY m.chat_id, m.created_at DESC
		)
		SELECT mc.id AS chat_id,
		       mc.peer_id,
		       COALESCE(p.name, 'Unknown') AS peer_name,
		       COALESCE(p.avatar_url, '') AS peer_avatar_url,
		       COALESCE(l.body, '') AS last_message,
		       COALESCE(l.sender_id, '') AS last_sender_id,
		       l.created_at AS last_message_at,
		       cm.last_read_at
		FROM my_chats mc
		LEFT JOIN profiles p ON p.id = mc.peer_id
		LEFT JOIN latest l ON l.chat_id = mc.id
		LEFT JOIN chat_members cm ON cm.chat_id = mc.id AND cm.user_id = $1
		WHERE l.created_at IS NOT NULL AND l.created_at >= $2
		ORDER BY l.created_at DESC`,
		userID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat summaries: %w", err)
	}
	return summaries, nil
}

func (r *chatRepository) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.GetContext(ctx, &chat,
		`SELECT id, user_a_id, user_b_id, created_at FROM chats WHERE id = $1`,
		chatID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	return &chat, nil
}

func (r *chatRepository) GetMessages(ctx context.Context, chatID string, limit int) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.SelectContext(ctx, &messages, `
		SELECT id, chat_id, sender_id, body, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
		LIMIT $2`,
		chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

func (r *chatRepository) InsertMessage(ctx context.Context, msg *domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *chatRepository) MarkRead(ctx context.Context, chatID, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_members (chat_id, user_id, last_read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, user_id)
		DO UPDATE SET last_read_at = GREATEST(chat_members.last_read_at, EXCLUDED.last_read_at)`,
		chatID, userID, at,
	)
	if err != nil {
		return fmt.Errorf("failed to mark chat read: %w", err)
	}
	return nil
}
