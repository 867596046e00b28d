package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localchef/bazaar-backend/models"
)

// PaymentRepository defines the interface for payment receipt access.
// Create surfaces ErrDuplicateKey on a transaction-id collision; the
// unique index is the authoritative at-most-once guard.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type mongoPaymentRepo struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a MongoDB-backed PaymentRepository.
func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepo{collection: db.Collection("payments")}
}

func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	res, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return translateErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}

func (r *mongoPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) FindAll(ctx context.Context) ([]models.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoPaymentRepo) FindByCustomerEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"customerEmail": email})
}

func (r *mongoPaymentRepo) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
