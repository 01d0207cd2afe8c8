package telegram

import (
	"AdDashboard/internal/core/ports"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder helps construct SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
	lines  []string
}

// NewBuilder creates a new message builder.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID:    chatID,
			ParseMode: tgbotapi.ModeMarkdownV2, // Default to Markdown
		},
	}
}

// WithText appends a line of pre-formatted text.
func (b *Builder) WithText(text string) *Builder {
	b.lines = append(b.lines, text)
	return b
}

// WithField appends a "*label:* value" line with both parts escaped.
func (b *Builder) WithField(label, value string) *Builder {
	return b.WithText("*" + b.escape(label) + ":* " + b.escape(value))
}

// WithParseMode overrides the default parse mode.
func (b *Builder) WithParseMode(mode string) *Builder {
	b.params.ParseMode = mode
	return b
}

// Silent delivers the message without a notification sound.
func (b *Builder) Silent() *Builder {
	b.params.DisableNotification = true
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	params := b.params
	params.Text = strings.Join(b.lines, "\n")
	return params
}

// escape is a no-op for plain text; EscapeText returns "" for unknown modes.
func (b *Builder) escape(text string) string {
	switch b.params.ParseMode {
	case tgbotapi.ModeMarkdown, tgbotapi.ModeMarkdownV2, tgbotapi.ModeHTML:
		return tgbotapi.EscapeText(b.params.ParseMode, text)
	}
	return text
}
