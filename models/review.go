package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a consumer's review of a meal; one per (meal, user).
type Review struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FoodID        string             `json:"foodId" bson:"foodId"`
	UserEmail     string             `json:"userEmail" bson:"userEmail"`
	ReviewerName  string             `json:"reviewerName,omitempty" bson:"reviewerName,omitempty"`
	ReviewerImage string             `json:"reviewerImage,omitempty" bson:"reviewerImage,omitempty"`
	Rating        float64            `json:"rating" bson:"rating"`
	Comment       string             `json:"comment" bson:"comment"`
	Date          time.Time          `json:"date" bson:"date"`
}

// UserReview is a review joined with its meal's name for the caller's
// review list. Deleted meals are tolerated and surfaced as "Meal Deleted".
type UserReview struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Rating   float64            `json:"rating" bson:"rating"`
	Comment  string             `json:"comment" bson:"comment"`
	Date     time.Time          `json:"date" bson:"date"`
	MealName string             `json:"mealName" bson:"mealName"`
}

// Favorite is a bookmark of a meal by a user; one per (meal, user).
type Favorite struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	MealID    string             `json:"mealId" bson:"mealId"`
	MealName  string             `json:"mealName" bson:"mealName"`
	ChefID    string             `json:"chefId,omitempty" bson:"chefId,omitempty"`
	ChefName  string             `json:"chefName,omitempty" bson:"chefName,omitempty"`
	Price     float64            `json:"price" bson:"price"`
	AddedTime time.Time          `json:"addedTime" bson:"addedTime"`
}
