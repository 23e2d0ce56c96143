package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/senku-sen/event-management-system/models"
)

// Identity is the resolved actor attached to a request after the
// authentication gate has verified the token and re-fetched the user.
type Identity struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

// IsAdmin reports whether the identity carries the Admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// CanMutateEvent allows the event owner and any admin.
func CanMutateEvent(actor Identity, ownerID primitive.ObjectID) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}

// CanCreateGroup allows admins only.
func CanCreateGroup(actor Identity) bool {
	return actor.IsAdmin()
}

// CanViewGroup allows everyone to see public groups and admins to see all.
func CanViewGroup(actor Identity, visibility string) bool {
	return actor.IsAdmin() || visibility == models.VisibilityPublic
}

// VisibleVisibilities returns the group visibilities the actor may list.
func VisibleVisibilities(actor Identity) []string {
	if actor.IsAdmin() {
		return []string{models.VisibilityPublic, models.VisibilityPrivate}
	}
	return []string{models.VisibilityPublic}
}
