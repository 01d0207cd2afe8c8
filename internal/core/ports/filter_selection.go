package ports

import (
	"AdDashboard/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// FilterSelectionRepository defines persistence for filter selections.
type FilterSelectionRepository interface {
	// Save inserts or replaces the selection for (OwnerID, Scope).
	Save(ctx context.Context, sel *domain.FilterSelection) error

	// Get returns nil, nil when nothing is stored for the owner and scope.
	Get(ctx context.Context, ownerID uuid.UUID, scope string) (*domain.FilterSelection, error)

	Delete(ctx context.Context, ownerID uuid.UUID, scope string) error
}
