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

// RoleRequestRepository defines the interface for role-change requests.
type RoleRequestRepository interface {
	Create(ctx context.Context, request *models.RoleRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RoleRequest, error)
	FindPendingByEmail(ctx context.Context, email string) (*models.RoleRequest, error)
	FindAll(ctx context.Context) ([]models.RoleRequest, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type mongoRoleRequestRepo struct {
	collection *mongo.Collection
}

// NewRoleRequestRepository creates a MongoDB-backed RoleRequestRepository.
func NewRoleRequestRepository(db *mongo.Database) RoleRequestRepository {
	return &mongoRoleRequestRepo{collection: db.Collection("roleRequests")}
}

func (r *mongoRoleRequestRepo) Create(ctx context.Context, request *models.RoleRequest) error {
	res, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid
	}
	return nil
}

func (r *mongoRoleRequestRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RoleRequest, error) {
	var request models.RoleRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *mongoRoleRequestRepo) FindPendingByEmail(ctx context.Context, email string) (*models.RoleRequest, error) {
	var request models.RoleRequest
	err := r.collection.FindOne(ctx, bson.M{
		"userEmail":     email,
		"requestStatus": models.RequestPending,
	}).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *mongoRoleRequestRepo) FindAll(ctx context.Context) ([]models.RoleRequest, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.RoleRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *mongoRoleRequestRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"requestStatus": status,
		"updatedAt":     now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
