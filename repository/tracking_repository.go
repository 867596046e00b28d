package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localchef/bazaar-backend/models"
)

// TrackingRepository is the append-only event store behind the tracking
// log. Events are never updated or deleted.
type TrackingRepository interface {
	Append(ctx context.Context, event *models.TrackingEvent) error
	FindByTrackingID(ctx context.Context, trackingID string) ([]models.TrackingEvent, error)
}

type mongoTrackingRepo struct {
	collection *mongo.Collection
}

// NewTrackingRepository creates a MongoDB-backed TrackingRepository.
func NewTrackingRepository(db *mongo.Database) TrackingRepository {
	return &mongoTrackingRepo{collection: db.Collection("trackings")}
}

func (r *mongoTrackingRepo) Append(ctx context.Context, event *models.TrackingEvent) error {
	res, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

func (r *mongoTrackingRepo) FindByTrackingID(ctx context.Context, trackingID string) ([]models.TrackingEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"trackingId": trackingID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.TrackingEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
