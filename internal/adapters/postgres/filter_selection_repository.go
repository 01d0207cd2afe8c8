package postgres

import (
	"AdDashboard/internal/core/domain"
	"AdDashboard/internal/core/ports"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var _ ports.FilterSelectionRepository = (*filterSelectionRepository)(nil) // Ensure compliance

type filterSelectionRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewFilterSelectionRepository creates a new repo for filter selections.
func NewFilterSelectionRepository(db *DB, baseLogger *zerolog.Logger) ports.FilterSelectionRepository {
	return &filterSelectionRepository{
		db:  db,
		log: baseLogger.With().Str("component", "filter_selection_repo").Logger(),
	}
}

// Save upserts the selection on (owner_id, scope). The stored ID and
// timestamps are written back into sel.
func (r *filterSelectionRepository) Save(ctx context.Context, sel *domain.FilterSelection) error {
	if sel.ID == uuid.Nil {
		sel.ID = uuid.New()
	}
	options := sel.Options
	if options == nil {
		options = []string{} // column is NOT NULL
	}

	query := `
		INSERT INTO filter_selections (id, owner_id, scope, options)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, scope) DO UPDATE
		SET options = EXCLUDED.options, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.pool.QueryRow(ctx, query, sel.ID, sel.OwnerID, sel.Scope, options).
		Scan(&sel.ID, &sel.CreatedAt, &sel.UpdatedAt)
	if err != nil {
		r.log.Error().Err(err).
			Str("owner_id", sel.OwnerID.String()).
			Str("scope", sel.Scope).
			Msg("Failed to save filter selection")
		return err
	}
	return nil
}

// Get finds the selection for an owner and scope.
func (r *filterSelectionRepository) Get(ctx context.Context, ownerID uuid.UUID, scope string) (*domain.FilterSelection, error) {
	query := `
		SELECT id, owner_id, scope, options, created_at, updated_at
		FROM filter_selections
		WHERE owner_id = $1 AND scope = $2
	`
	var sel domain.FilterSelection
	err := r.db.pool.QueryRow(ctx, query, ownerID, scope).Scan(
		&sel.ID,
		&sel.OwnerID,
		&sel.Scope,
		&sel.Options,
		&sel.CreatedAt,
		&sel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug().Str("owner_id", ownerID.String()).Str("scope", scope).Msg("Filter selection not found")
			return nil, nil // Return nil, nil for "not found"
		}
		r.log.Error().Err(err).Str("owner_id", ownerID.String()).Str("scope", scope).Msg("Failed to get filter selection")
		return nil, err
	}
	return &sel, nil
}

// Delete removes the selection. Deleting a missing row is not an error.
func (r *filterSelectionRepository) Delete(ctx context.Context, ownerID uuid.UUID, scope string) error {
	query := `DELETE FROM filter_selections WHERE owner_id = $1 AND scope = $2`
	if _, err := r.db.pool.Exec(ctx, query, ownerID, scope); err != nil {
		r.log.Error().Err(err).Str("owner_id", ownerID.String()).Str("scope", scope).Msg("Failed to delete filter selection")
		return err
	}
	return nil
}
