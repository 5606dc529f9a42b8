package domain

import "errors"

var (
	ErrNoSession       = errors.New("no active session")
	ErrProfileNotFound = errors.New("profile not found")
	ErrChatNotFound    = errors.New("chat not found")
	ErrNotChatMember   = errors.New("not a chat member")
	ErrInvalidInput    = errors.New("invalid input")
)
