package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/repository"
	"github.com/localchef/bazaar-backend/services"
)

// ---- mock payment repository ----

type mockPaymentRepo struct {
	byTxn       map[string]*models.Payment
	createErr   error
	findCalls   int
	missOnFirst bool
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{byTxn: map[string]*models.Payment{}}
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byTxn[payment.TransactionID]; exists {
		return repository.ErrDuplicateKey
	}
	payment.ID = primitive.NewObjectID()
	copied := *payment
	m.byTxn[payment.TransactionID] = &copied
	return nil
}

func (m *mockPaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	m.findCalls++
	if m.missOnFirst && m.findCalls == 1 {
		return nil, mongo.ErrNoDocuments
	}
	payment, ok := m.byTxn[transactionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return payment, nil
}

func (m *mockPaymentRepo) FindAll(_ context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	for _, p := range m.byTxn {
		payments = append(payments, *p)
	}
	return payments, nil
}

func (m *mockPaymentRepo) FindByCustomerEmail(_ context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	for _, p := range m.byTxn {
		if p.CustomerEmail == email {
			payments = append(payments, *p)
		}
	}
	return payments, nil
}

// ---- mock checkout provider ----

type mockCheckout struct {
	session    *stripe.CheckoutSession
	sessionErr error
	created    *stripe.CheckoutSession
	createErr  error
}

func (m *mockCheckout) CreateSession(_ context.Context, _ services.CheckoutParams) (*stripe.CheckoutSession, error) {
	return m.created, m.createErr
}

func (m *mockCheckout) GetSession(_ context.Context, _ string) (*stripe.CheckoutSession, error) {
	return m.session, m.sessionErr
}

// ---- helpers ----

var _ repository.PaymentRepository = (*mockPaymentRepo)(nil)
var _ services.CheckoutProvider = (*mockCheckout)(nil)

func newPaymentService(payments *mockPaymentRepo, orders *mockOrderRepo, checkout *mockCheckout) *services.PaymentService {
	logger, _ := zap.NewDevelopment()
	return services.NewPaymentService(payments, orders, checkout, logger)
}

func paidSession(orderID string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_test_123"},
		Metadata:      map[string]string{"orderId": orderID, "mealName": "Butter Chicken"},
		AmountTotal:   2500,
		Currency:      stripe.CurrencyUSD,
		CustomerEmail: "alice@example.com",
	}
}

func unpaidOrder() *models.Order {
	return &models.Order{
		UserEmail:     "alice@example.com",
		MealName:      "Butter Chicken",
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentStatusPending,
		TrackingID:    "LCB-20260831-ABCDEF",
	}
}

// ---- tests ----

func TestReconcile_NoSessionID(t *testing.T) {
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(), &mockCheckout{})

	result, svcErr := svc.Reconcile(context.Background(), "")

	require.Nil(t, svcErr)
	assert.False(t, result.Success)
	assert.Equal(t, "No session ID", result.Message)
}

func TestReconcile_RetrievalFailure(t *testing.T) {
	orders := newMockOrderRepo()
	checkout := &mockCheckout{sessionErr: errors.New("processor timeout")}
	svc := newPaymentService(newMockPaymentRepo(), orders, checkout)

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid or unpaid session", result.Message)
	assert.Zero(t, orders.markCalls)
}

func TestReconcile_UnpaidSession(t *testing.T) {
	orders := newMockOrderRepo()
	id := orders.add(unpaidOrder())
	sess := paidSession(id.Hex())
	sess.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid
	svc := newPaymentService(newMockPaymentRepo(), orders, &mockCheckout{session: sess})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid or unpaid session", result.Message)
	assert.Equal(t, models.PaymentStatusPending, orders.orders[id].PaymentStatus)
}

func TestReconcile_MissingMetadata(t *testing.T) {
	sess := paidSession("")
	delete(sess.Metadata, "orderId")
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(), &mockCheckout{session: sess})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.False(t, result.Success)
	assert.Equal(t, "Missing metadata", result.Message)
}

func TestReconcile_MissingPaymentIntent(t *testing.T) {
	sess := paidSession(primitive.NewObjectID().Hex())
	sess.PaymentIntent = nil
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(), &mockCheckout{session: sess})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.Equal(t, "Missing metadata", result.Message)
}

func TestReconcile_Success(t *testing.T) {
	payments := newMockPaymentRepo()
	orders := newMockOrderRepo()
	id := orders.add(unpaidOrder())
	svc := newPaymentService(payments, orders, &mockCheckout{session: paidSession(id.Hex())})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "Payment processed successfully", result.Message)
	require.NotNil(t, result.Payment)
	assert.Equal(t, "pi_test_123", result.Payment.TransactionID)
	assert.Equal(t, 25.0, result.Payment.Amount)
	assert.Equal(t, "usd", result.Payment.Currency)
	assert.Equal(t, "alice@example.com", result.Payment.CustomerEmail)

	assert.Equal(t, models.PaymentStatusPaid, orders.orders[id].PaymentStatus)
	require.NotNil(t, orders.orders[id].PaidAt)
	assert.Len(t, payments.byTxn, 1)
}

func TestReconcile_SecondCallIsNoOp(t *testing.T) {
	payments := newMockPaymentRepo()
	orders := newMockOrderRepo()
	id := orders.add(unpaidOrder())
	svc := newPaymentService(payments, orders, &mockCheckout{session: paidSession(id.Hex())})

	first, svcErr := svc.Reconcile(context.Background(), "cs_test_1")
	require.Nil(t, svcErr)
	require.True(t, first.Success)

	second, svcErr := svc.Reconcile(context.Background(), "cs_test_1")
	require.Nil(t, svcErr)
	assert.True(t, second.Success)
	assert.Equal(t, "Payment already processed", second.Message)
	require.NotNil(t, second.Payment)
	assert.Equal(t, "pi_test_123", second.Payment.TransactionID)

	assert.Len(t, payments.byTxn, 1)
	assert.Equal(t, 1, orders.markCalls)
}

func TestReconcile_OrderAlreadyPaidFallback(t *testing.T) {
	payments := newMockPaymentRepo()
	orders := newMockOrderRepo()
	order := unpaidOrder()
	order.PaymentStatus = models.PaymentStatusPaid
	id := orders.add(order)
	svc := newPaymentService(payments, orders, &mockCheckout{session: paidSession(id.Hex())})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "Order already marked as paid", result.Message)
	assert.Empty(t, payments.byTxn)
	assert.Zero(t, orders.markCalls)
}

func TestReconcile_ConcurrentMarkLosesRace(t *testing.T) {
	payments := newMockPaymentRepo()
	orders := newMockOrderRepo()
	orders.forceMarkMiss = true
	id := orders.add(unpaidOrder())
	svc := newPaymentService(payments, orders, &mockCheckout{session: paidSession(id.Hex())})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "Order already marked as paid", result.Message)
	assert.Empty(t, payments.byTxn)
}

func TestReconcile_DuplicateInsertRace(t *testing.T) {
	payments := newMockPaymentRepo()
	payments.missOnFirst = true
	payments.byTxn["pi_test_123"] = &models.Payment{
		TransactionID: "pi_test_123",
		OrderID:       "some-order",
		Amount:        25.0,
	}
	orders := newMockOrderRepo()
	id := orders.add(unpaidOrder())
	svc := newPaymentService(payments, orders, &mockCheckout{session: paidSession(id.Hex())})

	result, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.Nil(t, svcErr)
	assert.True(t, result.Success)
	assert.Equal(t, "Payment already processed", result.Message)
	require.NotNil(t, result.Payment)
	assert.Len(t, payments.byTxn, 1)
}

func TestReconcile_OrderNotFound(t *testing.T) {
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(),
		&mockCheckout{session: paidSession(primitive.NewObjectID().Hex())})

	_, svcErr := svc.Reconcile(context.Background(), "cs_test_1")

	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.Code)
}

func TestCreateCheckoutSession_ProviderFailure(t *testing.T) {
	checkout := &mockCheckout{createErr: errors.New("processor offline")}
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(), checkout)

	_, svcErr := svc.CreateCheckoutSession(context.Background(), &services.CheckoutSessionRequest{
		OrderID:       primitive.NewObjectID().Hex(),
		MealName:      "Butter Chicken",
		CustomerEmail: "alice@example.com",
		Price:         12.5,
		Quantity:      2,
	})

	require.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.Code)
}

func TestCreateCheckoutSession_ReturnsURL(t *testing.T) {
	checkout := &mockCheckout{created: &stripe.CheckoutSession{URL: "https://checkout.test/cs_1"}}
	svc := newPaymentService(newMockPaymentRepo(), newMockOrderRepo(), checkout)

	url, svcErr := svc.CreateCheckoutSession(context.Background(), &services.CheckoutSessionRequest{
		OrderID:       primitive.NewObjectID().Hex(),
		MealName:      "Butter Chicken",
		CustomerEmail: "alice@example.com",
		Price:         12.5,
		Quantity:      2,
	})

	require.Nil(t, svcErr)
	assert.Equal(t, "https://checkout.test/cs_1", url)
}

func TestListPayments_Authorization(t *testing.T) {
	payments := newMockPaymentRepo()
	payments.byTxn["pi_1"] = &models.Payment{TransactionID: "pi_1", CustomerEmail: "alice@example.com"}
	payments.byTxn["pi_2"] = &models.Payment{TransactionID: "pi_2", CustomerEmail: "bob@example.com"}
	svc := newPaymentService(payments, newMockOrderRepo(), &mockCheckout{})

	admin := models.Identity{Email: "admin@example.com", Role: models.RoleAdmin}
	all, svcErr := svc.ListPayments(context.Background(), admin, "")
	require.Nil(t, svcErr)
	assert.Len(t, all, 2)

	alice := models.Identity{Email: "alice@example.com", Role: models.RoleUser}
	own, svcErr := svc.ListPayments(context.Background(), alice, "alice@example.com")
	require.Nil(t, svcErr)
	require.Len(t, own, 1)
	assert.Equal(t, "pi_1", own[0].TransactionID)

	_, svcErr = svc.ListPayments(context.Background(), alice, "bob@example.com")
	require.NotNil(t, svcErr)
	assert.Equal(t, 403, svcErr.Code)

	_, svcErr = svc.ListPayments(context.Background(), alice, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.Code)
}
