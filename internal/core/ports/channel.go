package ports

import (
	"AdDashboard/internal/core/domain"
	"fmt"
	"reflect"
)

// Channel is a named hub channel whose payload is statically typed.
type Channel[T any] struct {
	name string
}

// NewChannel declares a typed channel.
func NewChannel[T any](name string) Channel[T] {
	return Channel[T]{name: name}
}

// Name returns the underlying hub channel name.
func (c Channel[T]) Name() string {
	return c.name
}

// Well-known dashboard channels.
var (
	ActiveEntityChanged = NewChannel[domain.ActiveEntityChange]("entity:active_changed")
	FilterToggled       = NewChannel[domain.FilterToggle]("filter:toggled")
)

// Subscribe registers a typed handler on ch. Notifications that don't carry
// exactly one T fail with ErrPayloadMismatch and never reach handler.
func Subscribe[T any](r Registrar, ch Channel[T], handler func(payload T) error) (Unregister, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	return r.Register(ch.name, func(args ...any) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: channel %q expects 1 argument, got %d", ErrPayloadMismatch, ch.name, len(args))
		}

		var payload T
		if args[0] != nil {
			p, ok := args[0].(T)
			if !ok {
				return fmt.Errorf("%w: channel %q expects %s, got %T",
					ErrPayloadMismatch, ch.name, reflect.TypeOf((*T)(nil)).Elem(), args[0])
			}
			payload = p
		}
		return handler(payload)
	})
}

// Publish sends payload to every handler on ch.
func Publish[T any](n Notifier, ch Channel[T], payload T) error {
	return n.Notify(ch.name, payload)
}
