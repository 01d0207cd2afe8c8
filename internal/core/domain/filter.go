package domain

import (
	"time"

	"github.com/google/uuid"
)

// FilterSelection holds the options an owner has selected in one filter scope
// (e.g. the campaign grid's status filter).
type FilterSelection struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Scope     string
	Options   []string // Selection order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FilterToggle is the payload of the "filter toggled" channel.
type FilterToggle struct {
	OwnerID   uuid.UUID
	Scope     string
	Option    string
	Selected  bool
	Selection []string // Full selection after the change
}
