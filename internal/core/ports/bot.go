package ports

import (
	"context"
)

// --- Bot Message Structures ---

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID              int64
	Text                string
	ParseMode           string // e.g., "MarkdownV2" or "HTML"
	DisableNotification bool
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for *sending* alert messages.
type BotClientPort interface {
	// SendMessage returns the message ID assigned by the chat service.
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)
}
