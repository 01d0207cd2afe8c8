package filterselector

import (
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidFilter is returned for an empty scope or option.
var ErrInvalidFilter = errors.New("filter scope and option must not be empty")

// Service keeps one owner's filter selections per scope and announces
// every toggle on ports.FilterToggled.
type Service struct {
	log      zerolog.Logger
	ownerID  uuid.UUID
	notifier ports.Notifier
	repo     ports.FilterSelectionRepository // nil means memory only

	mu     sync.Mutex
	scopes map[string]*domain.FilterSelection
}

// NewService creates a filter selector for ownerID. repo may be nil.
func NewService(
	ownerID uuid.UUID,
	notifier ports.Notifier,
	repo ports.FilterSelectionRepository,
	baseLogger *zerolog.Logger,
) *Service {
	return &Service{
		log:      baseLogger.With().Str("component", "filter_selector").Str("owner_id", ownerID.String()).Logger(),
		ownerID:  ownerID,
		notifier: notifier,
		repo:     repo,
		scopes:   make(map[string]*domain.FilterSelection),
	}
}

// Load replaces the in-memory selection for scope with the persisted one.
// It publishes nothing.
func (s *Service) Load(ctx context.Context, scope string) error {
	if strings.TrimSpace(scope) == "" {
		return ErrInvalidFilter
	}
	if s.repo == nil {
		return nil
	}

	sel, err := s.repo.Get(ctx, s.ownerID, scope)
	if err != nil {
		s.log.Error().Err(err).Str("scope", scope).Msg("Failed to load filter selection")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sel == nil {
		delete(s.scopes, scope)
		return nil
	}
	s.scopes[scope] = sel
	s.log.Info().Str("scope", scope).Int("options", len(sel.Options)).Msg("Filter selection loaded")
	return nil
}

// Toggle flips option in scope and returns whether it is now selected.
func (s *Service) Toggle(ctx context.Context, scope, option string) (bool, error) {
	var selected bool
	err := s.change(ctx, scope, []string{option}, func(opts []string, option string) ([]string, bool) {
		if i := slices.Index(opts, option); i >= 0 {
			selected = false
			return slices.Delete(opts, i, i+1), true
		}
		selected = true
		return append(opts, option), true
	})
	if err != nil {
		return false, err
	}
	return selected, nil
}

// Select adds option to scope. Already selected options are left alone.
func (s *Service) Select(ctx context.Context, scope, option string) error {
	return s.change(ctx, scope, []string{option}, func(opts []string, option string) ([]string, bool) {
		if slices.Contains(opts, option) {
			return opts, false
		}
		return append(opts, option), true
	})
}

// Deselect removes option from scope, if present.
func (s *Service) Deselect(ctx context.Context, scope, option string) error {
	return s.change(ctx, scope, []string{option}, deselect)
}

// Clear deselects every option in scope, one toggle notification each.
func (s *Service) Clear(ctx context.Context, scope string) error {
	if strings.TrimSpace(scope) == "" {
		return ErrInvalidFilter
	}
	return s.change(ctx, scope, s.Selected(scope), deselect)
}

// Selected returns the options selected in scope, in selection order.
func (s *Service) Selected(scope string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel, ok := s.scopes[scope]; ok {
		return slices.Clone(sel.Options)
	}
	return nil
}

// IsSelected reports whether option is selected in scope.
func (s *Service) IsSelected(scope, option string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.scopes[scope]
	return ok && slices.Contains(sel.Options, option)
}

func deselect(opts []string, option string) ([]string, bool) {
	i := slices.Index(opts, option)
	if i < 0 {
		return opts, false
	}
	return slices.Delete(opts, i, i+1), true
}

// change applies apply to each option in turn, persists the result and only
// then commits it. Notifications go out after the lock is released.
func (s *Service) change(
	ctx context.Context,
	scope string,
	options []string,
	apply func(opts []string, option string) ([]string, bool),
) error {
	if strings.TrimSpace(scope) == "" {
		return ErrInvalidFilter
	}
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return ErrInvalidFilter
		}
	}

	s.mu.Lock()
	current := s.scopes[scope]
	next := s.nextSelection(scope, current)

	var toggles []domain.FilterToggle
	for _, option := range options {
		opts, changed := apply(next.Options, option)
		if !changed {
			continue
		}
		next.Options = opts
		toggles = append(toggles, domain.FilterToggle{
			OwnerID:   s.ownerID,
			Scope:     scope,
			Option:    option,
			Selected:  slices.Contains(opts, option),
			Selection: slices.Clone(opts),
		})
	}

	if len(toggles) == 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Str("scope", scope).Msg("Failed to persist filter selection")
		return err
	}
	if len(next.Options) == 0 {
		delete(s.scopes, scope)
	} else {
		s.scopes[scope] = next
	}
	s.mu.Unlock()

	s.log.Debug().Str("scope", scope).Int("toggles", len(toggles)).Strs("selection", next.Options).Msg("Filter selection changed")

	for _, toggle := range toggles {
		if err := ports.Publish(s.notifier, ports.FilterToggled, toggle); err != nil {
			return err
		}
	}
	return nil
}

// persist saves sel, or deletes the stored row once nothing is selected.
func (s *Service) persist(ctx context.Context, sel *domain.FilterSelection) error {
	if s.repo == nil {
		return nil
	}
	if len(sel.Options) == 0 {
		return s.repo.Delete(ctx, sel.OwnerID, sel.Scope)
	}
	return s.repo.Save(ctx, sel)
}

// nextSelection returns a private copy of current, or a fresh selection.
func (s *Service) nextSelection(scope string, current *domain.FilterSelection) *domain.FilterSelection {
	if current == nil {
		now := time.Now().UTC()
		return &domain.FilterSelection{
			ID:        uuid.New(),
			OwnerID:   s.ownerID,
			Scope:     scope,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	next := *current
	next.Options = slices.Clone(current.Options)
	next.UpdatedAt = time.Now().UTC()
	return &next
}
