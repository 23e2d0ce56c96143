package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group visibility values. Private groups are hidden from non-admins.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// ValidVisibility reports whether v is a recognized value.
func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// DefaultMaxEvents caps group membership when the creator does not supply
// a limit.
const DefaultMaxEvents = 10

// Group is a stored group document. CreatedBy is always the acting admin.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	Visibility  string             `bson:"visibility" json:"visibility"`
	MaxEvents   int                `bson:"max_events" json:"maxEvents"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// GroupWithDetails is a group joined with its owner's public fields and its
// member events.
type GroupWithDetails struct {
	Group
	Owner  *UserSummary `json:"owner,omitempty"`
	Events []Event      `json:"events"`
}
