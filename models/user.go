package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values. Self-registration always produces RoleUser; only an admin
// can grant RoleAdmin.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// ValidRole reports whether role is one of the two recognized values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is the stored account record. Password holds the bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password_hash" json:"-"`
	Role      string             `bson:"role" json:"role"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// PublicUser is the profile shape returned by the API.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Email     string             `json:"email"`
	Role      string             `json:"role"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}

// Public strips the credential fields from a stored user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserSummary is the abbreviated owner info joined onto events and groups.
type UserSummary struct {
	ID        primitive.ObjectID `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
}

// Summary returns the abbreviated form used for joins.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
