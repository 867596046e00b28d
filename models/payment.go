package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the receipt recorded once per reconciled checkout session.
// TransactionID is the processor's payment-intent id and the idempotency
// key: at most one Payment ever exists for it (unique index). The record
// is never mutated or deleted after insert.
type Payment struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID       string             `json:"orderId" bson:"orderId"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	MealName      string             `json:"mealName" bson:"mealName"`
	CustomerEmail string             `json:"customerEmail" bson:"customerEmail"`
	Amount        float64            `json:"amount" bson:"amount"`
	Currency      string             `json:"currency" bson:"currency"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	PaidAt        time.Time          `json:"paidAt" bson:"paidAt"`
}
