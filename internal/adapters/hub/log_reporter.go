package hub

import (
	"AdDashboard/internal/core/ports"
	"errors"

	"github.com/rs/zerolog"
)

// logReporter implements ports.ErrorReporter by writing each failure to the log.
type logReporter struct {
	log zerolog.Logger
}

// NewLogReporter creates a reporter that logs handler failures.
func NewLogReporter(baseLogger *zerolog.Logger) ports.ErrorReporter {
	return &logReporter{
		log: baseLogger.With().Str("component", "hub_reporter").Logger(),
	}
}

// Report logs the failure. Panics are logged with their stack.
func (r *logReporter) Report(failure ports.HandlerFailure) {
	event := r.log.Error().
		Err(failure.Err).
		Str("channel", failure.Channel).
		Str("registration_id", failure.RegistrationID.String()).
		Int("position", failure.Position)

	var panicErr *ports.HandlerPanicError
	if errors.As(failure.Err, &panicErr) {
		event = event.Bytes("stack", panicErr.Stack)
		event.Msg("Notification handler panicked")
		return
	}
	event.Msg("Notification handler failed")
}
