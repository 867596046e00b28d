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

// OrderRepository defines the interface for order data access. Status and
// payment updates are conditional writes: they match on the state the
// caller read so that two racing updates cannot both apply.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByChefID(ctx context.Context, chefID string) ([]models.Order, error)
	FindSummariesByUserEmail(ctx context.Context, email string) ([]models.OrderSummary, error)
	UpdateStatusIfCurrent(ctx context.Context, id primitive.ObjectID, current, next string) (bool, error)
	MarkPaidIfUnpaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) (bool, error)
}

type mongoOrderRepo struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a MongoDB-backed OrderRepository.
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{collection: db.Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *mongoOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *mongoOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrderRepo) FindByChefID(ctx context.Context, chefID string) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "orderTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"chefId": chefID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindSummariesByUserEmail returns the caller's orders newest first, each
// joined with display fields from its meal. Orders whose meal has been
// deleted are kept with the denormalized fields only.
func (r *mongoOrderRepo) FindSummariesByUserEmail(ctx context.Context, email string) ([]models.OrderSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": email}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "meals",
			"localField":   "foodId",
			"foreignField": "_id",
			"as":           "meal",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$meal", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"userEmail":     1,
			"mealName":      1,
			"price":         1,
			"quantity":      1,
			"orderStatus":   1,
			"paymentStatus": 1,
			"trackingId":    1,
			"orderTime":     1,
			"chefName":      "$meal.chefName",
			"chefId":        "$meal.chefId",
			"deliveryTime":  "$meal.estimatedDeliveryTime",
		}}},
		{{Key: "$sort", Value: bson.M{"orderTime": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []models.OrderSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// UpdateStatusIfCurrent sets orderStatus to next only if it still equals
// current. Returns false when the order was modified since it was read.
func (r *mongoOrderRepo) UpdateStatusIfCurrent(ctx context.Context, id primitive.ObjectID, current, next string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "orderStatus": current},
		bson.M{"$set": bson.M{"orderStatus": next}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// MarkPaidIfUnpaid flips paymentStatus to paid and stamps paidAt, but only
// if the order is not already paid. Returns false on the no-op path.
func (r *mongoOrderRepo) MarkPaidIfUnpaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "paymentStatus": bson.M{"$ne": models.PaymentStatusPaid}},
		bson.M{"$set": bson.M{"paymentStatus": models.PaymentStatusPaid, "paidAt": paidAt}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
