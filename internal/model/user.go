package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles carried in the identity token and stored on the user document.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is one of the accepted role names.
func ValidRole(r string) bool { return r == RoleAdmin || r == RoleUser }

// User is a document in the `users` collection.  The password field holds
// the bcrypt hash only and is never serialized to JSON.  Recipes lists the
// recipes the user owns; it is maintained best-effort after each recipe
// insert and repaired by the reconciliation sweep.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	PasswordHash   string               `bson:"password" json:"-"`
	Role           string               `bson:"role" json:"role"`
	Recipes        []primitive.ObjectID `bson:"recipes" json:"recipes"`
	FirstName      string               `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName       string               `bson:"lastName,omitempty" json:"lastName,omitempty"`
	ProfilePicture string               `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Identity is the decoded payload of a bearer token.  It is immutable for
// the lifetime of the token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Owns reports whether owner references the identity's user.
func (i Identity) Owns(owner primitive.ObjectID) bool {
	return !owner.IsZero() && owner.Hex() == i.ID
}

// ObjectID converts the identity's user ID back into an ObjectID.
func (i Identity) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(i.ID)
}
