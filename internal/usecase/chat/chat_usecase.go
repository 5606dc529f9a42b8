package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/repository"
	"github.com/sirupsen/logrus"
)

const defaultMessageLimit = 200

// Sessions is the slice of the session context the use case needs.
type Sessions interface {
	Current() (*domain.Session, error)
}

// UseCase exposes the viewer's ephemeral chats: two-member conversations
// with append-only messages and a per-member read watermark.
type UseCase struct {
	chats    repository.ChatRepository
	sessions Sessions
	logger   *logrus.Logger
	now      func() time.Time
}

func NewUseCase(chats repository.ChatRepository, sessions Sessions, logger *logrus.Logger) *UseCase {
	return &UseCase{
		chats:    chats,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// SummaryResponse is one entry of the chat list.
type SummaryResponse struct {
	ChatID        string     `json:"chat_id"`
	PeerID        string     `json:"peer_id"`
	PeerName      string     `json:"peer_name"`
	PeerAvatarURL string     `json:"peer_avatar_url"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	Unread        bool       `json:"unread"`
}

// ListSummaries returns the viewer's chats, newest activity first. Chats
// idle for longer than the retention window disappear from the list.
func (uc *UseCase) ListSummaries(ctx context.Context) ([]SummaryResponse, error) {
	session, err := uc.sessions.Current()
	if err != nil {
		return nil, domain.ErrNoSession
	}

	cutoff := uc.now().Add(-domain.ChatRetention)
	summaries, err := uc.chats.ListSummaries(ctx, session.UserID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	out := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SummaryResponse{
			ChatID:        s.ChatID,
			PeerID:        s.PeerID,
			PeerName:      s.PeerName,
			PeerAvatarURL: s.PeerAvatarURL,
			LastMessage:   s.LastMessage,
			LastMessageAt: s.LastMessageAt,
			Unread:        s.Unread(session.UserID),
		})
	}
	return out, nil
}

// GetMessages returns a chat's messages oldest first. Only members may read.
func (uc *UseCase) GetMessages(ctx context.Context, chatID string) ([]*domain.Message, error) {
	session, err := uc.sessions.Current()
	if err != nil {
		return nil, domain.ErrNoSession
	}

	if err := uc.requireMember(ctx, chatID, session.UserID); err != nil {
		return nil, err
	}

	messages, err := uc.chats.GetMessages(ctx, chatID, defaultMessageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// Send appends a message authored by the viewer. The message ID is
// generated client-side so retries stay idempotent on the platform.
func (uc *UseCase) Send(ctx context.Context, chatID, body string) (*domain.Message, error) {
	session, err := uc.sessions.Current()
	if err != nil {
		return nil, domain.ErrNoSession
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.requireMember(ctx, chatID, session.UserID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  session.UserID,
		Body:      body,
		CreatedAt: uc.now(),
	}
	if err := uc.chats.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

// MarkRead advances the viewer's read watermark to now.
func (uc *UseCase) MarkRead(ctx context.Context, chatID string) error {
	session, err := uc.sessions.Current()
	if err != nil {
		return domain.ErrNoSession
	}

	if err := uc.requireMember(ctx, chatID, session.UserID); err != nil {
		return err
	}

	if err := uc.chats.MarkRead(ctx, chatID, session.UserID, uc.now()); err != nil {
		return fmt.Errorf("failed to mark chat read: %w", err)
	}
	return nil
}

func (uc *UseCase) requireMember(ctx context.Context, chatID, userID string) error {
	chat, err := uc.chats.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasMember(userID) {
		return domain.ErrNotChatMember
	}
	return nil
}
