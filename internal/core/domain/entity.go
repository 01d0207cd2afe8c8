package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind is a custom type for the dashboard's entity ENUM
type EntityKind string

const (
	EntityAccount   EntityKind = "account"
	EntityCampaign  EntityKind = "campaign"
	EntityAdGroup   EntityKind = "ad_group"
	EntityDeal      EntityKind = "deal"
	EntityPixel     EntityKind = "pixel"
	EntityPublisher EntityKind = "publisher"
	EntityRule      EntityKind = "rule"
	EntityCredit    EntityKind = "credit"
	EntityUser      EntityKind = "user"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityAccount, EntityCampaign, EntityAdGroup, EntityDeal, EntityPixel,
		EntityPublisher, EntityRule, EntityCredit, EntityUser:
		return true
	}
	return false
}

// EntityRef points at one platform entity.
type EntityRef struct {
	Kind EntityKind
	ID   uuid.UUID
	Name string // Display name, optional
}

// ActiveEntityChange is the payload of the "active entity changed" channel.
type ActiveEntityChange struct {
	Kind      EntityKind
	Previous  *EntityRef // nil when nothing was active
	Current   *EntityRef // nil when the active entity was cleared
	ChangedAt time.Time
}
