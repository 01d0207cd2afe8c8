package hub

import (
	"AdDashboard/internal/core/ports"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// registration is one handler at one position on one channel.
// Unregister matches on the pointer, so the same handler value
// registered twice is two distinct registrations.
type registration struct {
	id      uuid.UUID
	handler ports.Handler
}

// notificationHub implements the ports.NotificationHub interface
type notificationHub struct {
	log      zerolog.Logger
	reporter ports.ErrorReporter
	channels map[string][]*registration
	mu       sync.RWMutex
}

// NewNotificationHub creates a new, empty hub. Every call returns an
// independent registry. A nil reporter logs failures through baseLogger.
func NewNotificationHub(baseLogger *zerolog.Logger, reporter ports.ErrorReporter) ports.NotificationHub {
	if reporter == nil {
		reporter = NewLogReporter(baseLogger)
	}
	return &notificationHub{
		log:      baseLogger.With().Str("component", "notification_hub").Logger(),
		reporter: reporter,
		channels: make(map[string][]*registration),
	}
}

// Register appends a handler to a channel
func (h *notificationHub) Register(channel string, handler ports.Handler) (ports.Unregister, error) {
	if err := validateChannel(channel); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, ports.ErrNilHandler
	}

	reg := &registration{id: uuid.New(), handler: handler}

	h.mu.Lock() // Lock for writing to the map
	h.channels[channel] = append(h.channels[channel], reg)
	count := len(h.channels[channel])
	h.mu.Unlock()

	h.log.Debug().
		Str("channel", channel).
		Str("registration_id", reg.id.String()).
		Int("handlers", count).
		Msg("Handler registered")

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(channel, reg) })
	}, nil
}

// remove drops reg from channel. Empty channels are deleted.
func (h *notificationHub) remove(channel string, reg *registration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	regs := h.channels[channel]
	idx := slices.Index(regs, reg)
	if idx < 0 {
		return
	}

	if len(regs) == 1 {
		delete(h.channels, channel)
	} else {
		h.channels[channel] = slices.Delete(slices.Clone(regs), idx, idx+1)
	}

	h.log.Debug().
		Str("channel", channel).
		Str("registration_id", reg.id.String()).
		Msg("Handler unregistered")
}

// Notify calls every handler on the channel, in order, with args.
// It works on a copy of the handler list so handlers that register,
// unregister or notify again only affect later passes.
func (h *notificationHub) Notify(channel string, args ...any) error {
	if err := validateChannel(channel); err != nil {
		return err
	}

	h.mu.RLock()
	snapshot := slices.Clone(h.channels[channel])
	h.mu.RUnlock()

	if len(snapshot) == 0 {
		h.log.Debug().Str("channel", channel).Msg("Notified channel with no handlers")
		return nil
	}

	failed := 0
	for i, reg := range snapshot {
		if err := h.invoke(reg, args); err != nil {
			failed++
			h.reporter.Report(ports.HandlerFailure{
				Channel:        channel,
				RegistrationID: reg.id,
				Position:       i,
				Err:            err,
			})
		}
	}

	h.log.Debug().
		Str("channel", channel).
		Int("handlers", len(snapshot)).
		Int("failed", failed).
		Msg("Notification delivered")
	return nil
}

// invoke runs one handler, turning a panic into a *ports.HandlerPanicError.
func (h *notificationHub) invoke(reg *registration, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ports.HandlerPanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return reg.handler(args...)
}

func validateChannel(channel string) error {
	if strings.TrimSpace(channel) == "" {
		return ports.ErrInvalidChannel
	}
	return nil
}
