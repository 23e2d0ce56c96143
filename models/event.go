package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event status values. New events always start as upcoming.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// Event categories.
const (
	CategoryConference = "conference"
	CategoryWorkshop   = "workshop"
	CategoryWebinar    = "webinar"
	CategoryMeetup     = "meetup"
)

// ValidEventStatus reports whether status is a recognized value.
func ValidEventStatus(status string) bool {
	switch status {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted:
		return true
	}
	return false
}

// ValidCategory reports whether category is a recognized value.
func ValidCategory(category string) bool {
	switch category {
	case CategoryConference, CategoryWorkshop, CategoryWebinar, CategoryMeetup:
		return true
	}
	return false
}

// Event is a stored event document. EndDate is strictly after StartDate.
// GroupID is set when the event belongs to a group.
type Event struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	StartDate    time.Time           `bson:"start_date" json:"startDate"`
	EndDate      time.Time           `bson:"end_date" json:"endDate"`
	Location     string              `bson:"location" json:"location"`
	Status       string              `bson:"status" json:"status"`
	Category     string              `bson:"category" json:"category"`
	MaxAttendees int                 `bson:"max_attendees" json:"maxAttendees"`
	CreatedBy    primitive.ObjectID  `bson:"created_by" json:"createdBy"`
	GroupID      *primitive.ObjectID `bson:"group_id,omitempty" json:"groupId,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// EventWithOwner is an event joined with its creator's public fields.
type EventWithOwner struct {
	Event
	Owner *UserSummary `json:"owner,omitempty"`
}
