package telegram

import (
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AlertForwarder relays dashboard notifications to a Telegram chat.
// It is a hub subscriber, not a bot: it never reads updates.
type AlertForwarder struct {
	log       zerolog.Logger
	registrar ports.Registrar
	client    ports.BotClientPort
	chatID    int64

	mu          sync.Mutex
	unregisters []ports.Unregister
}

// NewAlertForwarder creates a forwarder sending to chatID through client.
func NewAlertForwarder(
	registrar ports.Registrar,
	client ports.BotClientPort,
	chatID int64,
	baseLogger *zerolog.Logger,
) *AlertForwarder {
	return &AlertForwarder{
		log:       baseLogger.With().Str("component", "alert_forwarder").Int64("chat_id", chatID).Logger(),
		registrar: registrar,
		client:    client,
		chatID:    chatID,
	}
}

// Start subscribes to the dashboard channels. ctx is handed to every send.
// Calling Start twice without Stop is an error.
func (f *AlertForwarder) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.unregisters) > 0 {
		return errors.New("alert forwarder already started")
	}

	offEntity, err := ports.Subscribe(f.registrar, ports.ActiveEntityChanged, func(c domain.ActiveEntityChange) error {
		return f.send(ctx, f.formatEntityChange(c))
	})
	if err != nil {
		return err
	}

	offFilter, err := ports.Subscribe(f.registrar, ports.FilterToggled, func(t domain.FilterToggle) error {
		return f.send(ctx, f.formatFilterToggle(t))
	})
	if err != nil {
		offEntity()
		return err
	}

	f.unregisters = []ports.Unregister{offEntity, offFilter}
	f.log.Info().Msg("Alert forwarder subscribed")
	return nil
}

// Stop releases every registration. It is safe to call more than once.
func (f *AlertForwarder) Stop() {
	f.mu.Lock()
	unregisters := f.unregisters
	f.unregisters = nil
	f.mu.Unlock()

	for _, off := range unregisters {
		off()
	}
	if len(unregisters) > 0 {
		f.log.Info().Msg("Alert forwarder unsubscribed")
	}
}

func (f *AlertForwarder) send(ctx context.Context, params ports.SendMessageParams) error {
	messageID, err := f.client.SendMessage(ctx, params)
	if err != nil {
		return err // the hub reports it
	}
	f.log.Debug().Int("message_id", messageID).Msg("Alert sent")
	return nil
}

func (f *AlertForwarder) formatEntityChange(c domain.ActiveEntityChange) ports.SendMessageParams {
	b := NewBuilder(f.chatID).Silent()
	if c.Current == nil {
		b.WithText("*Active " + b.escape(string(c.Kind)) + " cleared*")
	} else {
		b.WithText("*Active " + b.escape(string(c.Kind)) + " changed*")
		b.WithField("Now", describeEntity(*c.Current))
	}
	if c.Previous != nil {
		b.WithField("Was", describeEntity(*c.Previous))
	}
	b.WithField("At", c.ChangedAt.UTC().Format(time.RFC3339))
	return b.Build()
}

func (f *AlertForwarder) formatFilterToggle(t domain.FilterToggle) ports.SendMessageParams {
	state := "deselected"
	if t.Selected {
		state = "selected"
	}
	selection := "none"
	if len(t.Selection) > 0 {
		selection = strings.Join(t.Selection, ", ")
	}

	b := NewBuilder(f.chatID).Silent()
	b.WithText("*Filter " + b.escape(state) + "*")
	b.WithField("Scope", t.Scope)
	b.WithField("Option", t.Option)
	b.WithField("Selection", selection)
	return b.Build()
}

func describeEntity(ref domain.EntityRef) string {
	if ref.Name == "" {
		return ref.ID.String()
	}
	return ref.Name + " (" + ref.ID.String() + ")"
}
