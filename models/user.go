package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles and standings.
const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"

	StatusActive = "active"
	StatusFraud  = "fraud"
)

// User is an account document. ChefID is set only once a chef role
// request has been approved.
type User struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	DisplayName   string             `json:"displayName,omitempty" bson:"displayName,omitempty"`
	PhotoURL      string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role          string             `json:"role" bson:"role"`
	Status        string             `json:"status,omitempty" bson:"status,omitempty"`
	ChefID        string             `json:"chefId,omitempty" bson:"chefId,omitempty"`
	RequestedRole string             `json:"requestedRole,omitempty" bson:"requestedRole,omitempty"`
	RequestStatus string             `json:"requestStatus,omitempty" bson:"requestStatus,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// Identity is the authenticated caller, derived once by the auth
// middleware and passed explicitly into services.
type Identity struct {
	Email string
	Role  string
}

// IsAdmin reports whether the caller carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
