package controllers_test

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/repository"
	"github.com/localchef/bazaar-backend/services"
)

// In-memory repository doubles shared by the handler tests.

type stubOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[primitive.ObjectID]*models.Order{}}
}

func (s *stubOrderRepo) add(order *models.Order) primitive.ObjectID {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders[order.ID] = order
	return order.ID
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) error {
	s.add(order)
	return nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (s *stubOrderRepo) FindByChefID(_ context.Context, chefID string) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range s.orders {
		if o.ChefID == chefID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (s *stubOrderRepo) FindSummariesByUserEmail(_ context.Context, _ string) ([]models.OrderSummary, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatusIfCurrent(_ context.Context, id primitive.ObjectID, current, next string) (bool, error) {
	order, ok := s.orders[id]
	if !ok || order.OrderStatus != current {
		return false, nil
	}
	order.OrderStatus = next
	return true, nil
}

func (s *stubOrderRepo) MarkPaidIfUnpaid(_ context.Context, id primitive.ObjectID, paidAt time.Time) (bool, error) {
	order, ok := s.orders[id]
	if !ok || order.PaymentStatus == models.PaymentStatusPaid {
		return false, nil
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaidAt = &paidAt
	return true, nil
}

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *models.User) error { return nil }

func (s *stubUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.user == nil {
		return nil, mongo.ErrNoDocuments
	}
	return s.user, nil
}

func (s *stubUserRepo) FindAll(_ context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUserRepo) UpdateByEmail(_ context.Context, _ string, _ bson.M, _ bson.M) error {
	return nil
}

func (s *stubUserRepo) SetStatusByID(_ context.Context, _ primitive.ObjectID, _ string) error {
	return nil
}

type stubTrackingRepo struct {
	appended []models.TrackingEvent
}

func (s *stubTrackingRepo) Append(_ context.Context, event *models.TrackingEvent) error {
	s.appended = append(s.appended, *event)
	return nil
}

func (s *stubTrackingRepo) FindByTrackingID(_ context.Context, trackingID string) ([]models.TrackingEvent, error) {
	var events []models.TrackingEvent
	for _, e := range s.appended {
		if e.TrackingID == trackingID {
			events = append(events, e)
		}
	}
	return events, nil
}

type stubPaymentRepo struct {
	byTxn map[string]*models.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byTxn: map[string]*models.Payment{}}
}

func (s *stubPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if _, exists := s.byTxn[payment.TransactionID]; exists {
		return repository.ErrDuplicateKey
	}
	copied := *payment
	s.byTxn[payment.TransactionID] = &copied
	return nil
}

func (s *stubPaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	payment, ok := s.byTxn[transactionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return payment, nil
}

func (s *stubPaymentRepo) FindAll(_ context.Context) ([]models.Payment, error) { return nil, nil }

func (s *stubPaymentRepo) FindByCustomerEmail(_ context.Context, _ string) ([]models.Payment, error) {
	return nil, nil
}

type stubCheckout struct {
	session    *stripe.CheckoutSession
	sessionErr error
}

func (s *stubCheckout) CreateSession(_ context.Context, _ services.CheckoutParams) (*stripe.CheckoutSession, error) {
	return s.session, s.sessionErr
}

func (s *stubCheckout) GetSession(_ context.Context, _ string) (*stripe.CheckoutSession, error) {
	return s.session, s.sessionErr
}

var (
	_ repository.OrderRepository    = (*stubOrderRepo)(nil)
	_ repository.UserRepository     = (*stubUserRepo)(nil)
	_ repository.TrackingRepository = (*stubTrackingRepo)(nil)
	_ repository.PaymentRepository  = (*stubPaymentRepo)(nil)
	_ services.CheckoutProvider     = (*stubCheckout)(nil)
)
