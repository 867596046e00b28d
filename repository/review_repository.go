package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localchef/bazaar-backend/models"
)

// ReviewRepository defines the interface for review access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByMealAndUser(ctx context.Context, mealID, userEmail string) (*models.Review, error)
	FindByMealID(ctx context.Context, mealID string) ([]models.Review, error)
	FindByUserEmail(ctx context.Context, email string) ([]models.UserReview, error)
	SampleTopRated(ctx context.Context, minRating float64, size int) ([]models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, rating float64, comment string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type mongoReviewRepo struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a MongoDB-backed ReviewRepository.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepo{collection: db.Collection("reviews")}
}

func (r *mongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	res, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *mongoReviewRepo) FindByMealAndUser(ctx context.Context, mealID, userEmail string) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"foodId": mealID, "userEmail": userEmail}).Decode(&review)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *mongoReviewRepo) FindByMealID(ctx context.Context, mealID string) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"foodId": mealID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUserEmail joins each review with its meal's display name. Reviews
// of deleted meals survive with the "Meal Deleted" placeholder.
func (r *mongoReviewRepo) FindByUserEmail(ctx context.Context, email string) ([]models.UserReview, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": email}}},
		{{Key: "$addFields", Value: bson.M{
			"foodObjectId": bson.M{"$convert": bson.M{
				"input": "$foodId", "to": "objectId", "onError": "$foodId",
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "meals",
			"localField":   "foodObjectId",
			"foreignField": "_id",
			"as":           "meal",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$meal", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"rating":   1,
			"comment":  1,
			"date":     1,
			"mealName": bson.M{"$ifNull": bson.A{"$meal.foodName", "Meal Deleted"}},
		}}},
		{{Key: "$sort", Value: bson.M{"date": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.UserReview
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *mongoReviewRepo) SampleTopRated(ctx context.Context, minRating float64, size int) ([]models.Review, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rating": bson.M{"$gte": minRating}}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *mongoReviewRepo) Update(ctx context.Context, id primitive.ObjectID, rating float64, comment string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"rating":  rating,
		"comment": comment,
		"date":    time.Now(),
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
