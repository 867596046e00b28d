package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingEvent is one append-only entry in an order's tracking history.
// Multiple events per tracking id are expected; ordering is by CreatedAt.
type TrackingEvent struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	TrackingID string             `json:"trackingId" bson:"trackingId"`
	Status     string             `json:"status" bson:"status"`
	Details    string             `json:"details" bson:"details"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
