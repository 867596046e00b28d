package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is a chef's listing. ChefName and ChefID are denormalized from the
// owning account at creation time.
type Meal struct {
	ID                    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FoodName              string             `json:"foodName" bson:"foodName"`
	FoodImage             string             `json:"foodImage,omitempty" bson:"foodImage,omitempty"`
	ChefName              string             `json:"chefName" bson:"chefName"`
	ChefID                string             `json:"chefId" bson:"chefId"`
	UserEmail             string             `json:"userEmail" bson:"userEmail"`
	Price                 float64            `json:"price" bson:"price"`
	Rating                float64            `json:"rating" bson:"rating"`
	Ingredients           string             `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	DeliveryArea          []string           `json:"deliveryArea" bson:"deliveryArea"`
	EstimatedDeliveryTime string             `json:"estimatedDeliveryTime,omitempty" bson:"estimatedDeliveryTime,omitempty"`
	ChefExperience        string             `json:"chefExperience,omitempty" bson:"chefExperience,omitempty"`
	Status                string             `json:"status" bson:"status"`
	CreatedAt             time.Time          `json:"createdAt" bson:"createdAt"`
}

// PaginatedMeals is the public listing response.
type PaginatedMeals struct {
	Meals       []Meal `json:"meals"`
	TotalMeals  int64  `json:"totalMeals"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}
