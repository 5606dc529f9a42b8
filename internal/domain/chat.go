package domain

import "time"

// ChatRetention is how long a chat stays visible. Chats disappear after
// one week; the cutoff is applied when listing, the platform prunes rows.
const ChatRetention = 7 * 24 * time.Hour

type Chat struct {
	ID        string    `json:"id" db:"id"`
	UserAID   string    `json:"user_a_id" db:"user_a_id"`
	UserBID   string    `json:"user_b_id" db:"user_b_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (c *Chat) HasMember(userID string) bool {
	return c.UserAID == userID || c.UserBID == userID
}

func (c *Chat) PeerOf(userID string) (string, bool) {
	switch userID {
	case c.UserAID:
		return c.UserBID, true
	case c.UserBID:
		return c.UserAID, true
	}
	return "", false
}

// Message is append-only and ordered by creation time within its chat.
type Message struct {
	ID        string    `json:"id" db:"id"`
	ChatID    string    `json:"chat_id" db:"chat_id"`
	SenderID  string    `json:"sender_id" db:"sender_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChatSummary is one row of the chat list: the peer, the latest message
// and whether that message is still unread by the viewer.
type ChatSummary struct {
	ChatID        string     `json:"chat_id" db:"chat_id"`
	PeerID        string     `json:"peer_id" db:"peer_id"`
	PeerName      string     `json:"peer_name" db:"peer_name"`
	PeerAvatarURL string     `json:"peer_avatar_url" db:"peer_avatar_url"`
	LastMessage   string     `json:"last_message" db:"last_message"`
	LastSenderID  string     `json:"last_sender_id" db:"last_sender_id"`
	LastMessageAt *time.Time `json:"last_message_at" db:"last_message_at"`
	LastReadAt    *time.Time `json:"last_read_at" db:"last_read_at"`
}

// Unread reports whether the most recent message was authored by the peer
// and is newer than the viewer's read watermark.
func (s *ChatSummary) Unread(viewerID string) bool {
	if s.LastMessageAt == nil || s.LastSenderID == viewerID {
		return false
	}
	if s.LastReadAt == nil {
		return true
	}
	return s.LastMessageAt.After(*s.LastReadAt)
}
