package activeentity

import (
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidEntity is returned for refs with an unknown kind or a nil ID.
var ErrInvalidEntity = errors.New("invalid entity reference")

// Service tracks which entity of each kind is currently active in the
// dashboard (the selected account, campaign, ad group...) and announces
// changes on ports.ActiveEntityChanged.
type Service struct {
	log      zerolog.Logger
	notifier ports.Notifier
	now      func() time.Time

	mu     sync.Mutex
	active map[domain.EntityKind]domain.EntityRef
}

// NewService creates an active entity tracker publishing through notifier.
func NewService(notifier ports.Notifier, baseLogger *zerolog.Logger) *Service {
	return &Service{
		log:      baseLogger.With().Str("component", "active_entity").Logger(),
		notifier: notifier,
		now:      time.Now,
		active:   make(map[domain.EntityKind]domain.EntityRef),
	}
}

// SetActive makes ref the active entity of its kind.
// Re-selecting the current entity publishes nothing; a changed Name
// is still stored.
func (s *Service) SetActive(ref domain.EntityRef) error {
	if !ref.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntity, ref.Kind)
	}
	if ref.ID == uuid.Nil {
		return fmt.Errorf("%w: %s has no ID", ErrInvalidEntity, ref.Kind)
	}

	s.mu.Lock()
	prev, hadPrev := s.active[ref.Kind]
	if hadPrev && prev.ID == ref.ID {
		s.active[ref.Kind] = ref
		s.mu.Unlock()
		return nil
	}
	s.active[ref.Kind] = ref
	s.mu.Unlock()

	change := domain.ActiveEntityChange{
		Kind:      ref.Kind,
		Current:   &ref,
		ChangedAt: s.now(),
	}
	if hadPrev {
		change.Previous = &prev
	}

	s.log.Info().
		Str("kind", string(ref.Kind)).
		Str("entity_id", ref.ID.String()).
		Msg("Active entity changed")

	return ports.Publish(s.notifier, ports.ActiveEntityChanged, change)
}

// Active returns the active entity of the given kind, if any.
func (s *Service) Active(kind domain.EntityKind) (domain.EntityRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.active[kind]
	return ref, ok
}

// Clear forgets the active entity of kind. Subscribers get a change
// with a nil Current; nothing is published when nothing was active.
func (s *Service) Clear(kind domain.EntityKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntity, kind)
	}

	s.mu.Lock()
	prev, hadPrev := s.active[kind]
	delete(s.active, kind)
	s.mu.Unlock()

	if !hadPrev {
		return nil
	}

	s.log.Info().Str("kind", string(kind)).Msg("Active entity cleared")
	return ports.Publish(s.notifier, ports.ActiveEntityChanged, domain.ActiveEntityChange{
		Kind:      kind,
		Previous:  &prev,
		ChangedAt: s.now(),
	})
}
