package ports

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidChannel is returned when a channel name is empty or blank.
	ErrInvalidChannel = errors.New("invalid channel name")
	// ErrNilHandler is returned when Register is called without a handler.
	ErrNilHandler = errors.New("handler must not be nil")
	// ErrPayloadMismatch is returned by typed handlers that receive arguments
	// of the wrong shape.
	ErrPayloadMismatch = errors.New("payload does not match channel type")
)

// Handler is a callback subscribed to a channel.
// A non-nil error counts as a failed invocation.
type Handler func(args ...any) error

// Unregister removes a single registration. Calling it again is a no-op.
type Unregister func()

// Registrar is the subscribing half of the hub.
type Registrar interface {
	// Register appends handler to the channel's handler list.
	Register(channel string, handler Handler) (Unregister, error)
}

// Notifier is the publishing half of the hub.
type Notifier interface {
	// Notify synchronously calls every handler registered on channel,
	// in registration order, with args.
	Notify(channel string, args ...any) error
}

// NotificationHub defines the interface for our in-process pub/sub registry
type NotificationHub interface {
	Registrar
	Notifier
}

// HandlerFailure describes one failed handler invocation during Notify.
type HandlerFailure struct {
	Channel        string
	RegistrationID uuid.UUID
	Position       int // index in the notification snapshot
	Err            error
}

// ErrorReporter receives handler failures. Notify keeps going after reporting.
type ErrorReporter interface {
	Report(failure HandlerFailure)
}

// HandlerPanicError wraps a value recovered from a panicking handler.
type HandlerPanicError struct {
	Value any
	Stack []byte
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *HandlerPanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
