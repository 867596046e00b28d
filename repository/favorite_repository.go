package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localchef/bazaar-backend/models"
)

// FavoriteRepository defines the interface for favorite bookmarks.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	FindByUserAndMeal(ctx context.Context, userEmail, mealID string) (*models.Favorite, error)
	FindByUserEmail(ctx context.Context, email string) ([]models.Favorite, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type mongoFavoriteRepo struct {
	collection *mongo.Collection
}

// NewFavoriteRepository creates a MongoDB-backed FavoriteRepository.
func NewFavoriteRepository(db *mongo.Database) FavoriteRepository {
	return &mongoFavoriteRepo{collection: db.Collection("favorites")}
}

func (r *mongoFavoriteRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	res, err := r.collection.InsertOne(ctx, favorite)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		favorite.ID = oid
	}
	return nil
}

func (r *mongoFavoriteRepo) FindByUserAndMeal(ctx context.Context, userEmail, mealID string) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.collection.FindOne(ctx, bson.M{"userEmail": userEmail, "mealId": mealID}).Decode(&favorite)
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindByUserEmail returns the caller's favorites newest first. The meal
// name falls back to the live meal document when the denormalized copy is
// empty.
func (r *mongoFavoriteRepo) FindByUserEmail(ctx context.Context, email string) ([]models.Favorite, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": email}}},
		{{Key: "$addFields", Value: bson.M{
			"mealObjectId": bson.M{"$convert": bson.M{
				"input": "$mealId", "to": "objectId", "onError": "$mealId",
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "meals",
			"localField":   "mealObjectId",
			"foreignField": "_id",
			"as":           "meal",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$meal", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"userEmail": 1,
			"mealId":    1,
			"mealName":  bson.M{"$ifNull": bson.A{"$mealName", "$meal.foodName"}},
			"chefName":  1,
			"price":     1,
			"addedTime": 1,
		}}},
		{{Key: "$sort", Value: bson.M{"addedTime": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *mongoFavoriteRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
