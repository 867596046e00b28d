package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localchef/bazaar-backend/models"
)

// MealRepository defines the interface for meal listing access.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Meal, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type mongoMealRepo struct {
	collection *mongo.Collection
}

// NewMealRepository creates a MongoDB-backed MealRepository.
func NewMealRepository(db *mongo.Database) MealRepository {
	return &mongoMealRepo{collection: db.Collection("meals")}
}

func (r *mongoMealRepo) Create(ctx context.Context, meal *models.Meal) error {
	res, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		meal.ID = oid
	}
	return nil
}

func (r *mongoMealRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var meal models.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mongoMealRepo) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Meal, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err = cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mongoMealRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

func (r *mongoMealRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoMealRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
