package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role request statuses.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// RoleRequest is a user's request to be promoted to another role. A user
// may have at most one pending request at a time.
type RoleRequest struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserEmail     string             `json:"userEmail" bson:"userEmail"`
	UserName      string             `json:"userName,omitempty" bson:"userName,omitempty"`
	RequestType   string             `json:"requestType" bson:"requestType"`
	RequestStatus string             `json:"requestStatus" bson:"requestStatus"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
