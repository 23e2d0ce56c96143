// Package store holds the persistence interfaces and their MongoDB
// implementations. Services depend on the interfaces only.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/models"
)

var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate key")
)

// UserStore persists account records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	FindByName(ctx context.Context, query string) ([]models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// EventStore persists event records.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Event, error)
	ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Event, error)
	CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// GroupStore persists group records.
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	// List returns groups whose visibility is one of the given values.
	List(ctx context.Context, visibilities []string) ([]models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
