package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Delivered and cancelled are terminal.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses on an order. The casing is part of the wire format.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "paid"
)

// Order is an order document. TrackingID is assigned exactly once at
// creation and never changes; PaidAt is set iff PaymentStatus is paid.
type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserEmail     string             `json:"userEmail" bson:"userEmail"`
	ChefID        string             `json:"chefId" bson:"chefId"`
	FoodID        primitive.ObjectID `json:"foodId,omitempty" bson:"foodId,omitempty"`
	MealName      string             `json:"mealName" bson:"mealName"`
	Price         float64            `json:"price" bson:"price"`
	Quantity      int                `json:"quantity" bson:"quantity"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	OrderStatus   string             `json:"orderStatus" bson:"orderStatus"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	TrackingID    string             `json:"trackingId" bson:"trackingId"`
	OrderTime     time.Time          `json:"orderTime" bson:"orderTime"`
	PaidAt        *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}

// OrderSummary is an order joined with display fields from its meal,
// returned by the account-facing listing.
type OrderSummary struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	UserEmail     string             `json:"userEmail" bson:"userEmail"`
	MealName      string             `json:"mealName" bson:"mealName"`
	Price         float64            `json:"price" bson:"price"`
	Quantity      int                `json:"quantity" bson:"quantity"`
	OrderStatus   string             `json:"orderStatus" bson:"orderStatus"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	TrackingID    string             `json:"trackingId" bson:"trackingId"`
	OrderTime     time.Time          `json:"orderTime" bson:"orderTime"`
	ChefName      string             `json:"chefName,omitempty" bson:"chefName,omitempty"`
	ChefID        string             `json:"chefId,omitempty" bson:"chefId,omitempty"`
	DeliveryTime  string             `json:"deliveryTime,omitempty" bson:"deliveryTime,omitempty"`
}
