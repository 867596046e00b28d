package services

import (
	"context"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// CheckoutSessionRequest is the payload for creating a hosted checkout
// session for an order.
type CheckoutSessionRequest struct {
	OrderID       string  `json:"orderId" binding:"required"`
	MealName      string  `json:"mealName" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
}

// ReconcileResult is the outcome of a reconciliation call. The
// idempotency short-circuits are successful no-ops, not errors.
type ReconcileResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment *models.Payment `json:"paymentInfo,omitempty"`
}

// PaymentService reconciles externally-confirmed checkout sessions with
// orders and payment records, tolerating repeated invocation for the
// same session.
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	checkout CheckoutProvider
	logger   *zap.Logger
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, checkout CheckoutProvider, logger *zap.Logger) *PaymentService {
	return &PaymentService{payments: payments, orders: orders, checkout: checkout, logger: logger}
}

// CreateCheckoutSession delegates to the payment processor and returns
// the hosted checkout URL for the caller to redirect to.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (string, *apperrors.Error) {
	sess, err := s.checkout.CreateSession(ctx, CheckoutParams{
		OrderID:       req.OrderID,
		MealName:      req.MealName,
		CustomerEmail: req.CustomerEmail,
		Price:         req.Price,
		Quantity:      req.Quantity,
	})
	if err != nil {
		s.logger.Warn("Checkout session creation failed",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		return "", apperrors.Upstream("Checkout session creation failed", err)
	}
	return sess.URL, nil
}

// Reconcile links one confirmed checkout session to exactly one order
// and exactly one payment record. Safe to call any number of times for
// the same session: the payment-record lookup is the primary idempotency
// guard and the order's paymentStatus is the fallback covering a prior
// crash between the two writes (they are not one atomic unit).
func (s *PaymentService) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, *apperrors.Error) {
	if sessionID == "" {
		return &ReconcileResult{Message: "No session ID"}, nil
	}

	sess, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Checkout session retrieval failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return &ReconcileResult{Message: "Invalid or unpaid session"}, nil
	}
	if sess == nil || sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return &ReconcileResult{Message: "Invalid or unpaid session"}, nil
	}

	transactionID := ""
	if sess.PaymentIntent != nil {
		transactionID = sess.PaymentIntent.ID
	}
	orderID := sess.Metadata["orderId"]
	if transactionID == "" || orderID == "" {
		return &ReconcileResult{Message: "Missing metadata"}, nil
	}

	// Primary idempotency guard: one payment record per transaction id.
	existing, err := s.payments.FindByTransactionID(ctx, transactionID)
	if err == nil {
		return &ReconcileResult{Success: true, Message: "Payment already processed", Payment: existing}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return &ReconcileResult{Message: "Missing metadata"}, nil
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	// Fallback guard: the order write can be ahead of the payment-record
	// write after a partial failure or an out-of-band update.
	if order.PaymentStatus == models.PaymentStatusPaid {
		return &ReconcileResult{Success: true, Message: "Order already marked as paid"}, nil
	}

	now := time.Now()
	marked, err := s.orders.MarkPaidIfUnpaid(ctx, oid, now)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !marked {
		// A concurrent reconciliation won the order write; it owns the
		// payment-record insert too.
		return &ReconcileResult{Success: true, Message: "Order already marked as paid"}, nil
	}

	payment := &models.Payment{
		OrderID:       orderID,
		TransactionID: transactionID,
		MealName:      sess.Metadata["mealName"],
		CustomerEmail: customerEmail(sess),
		Amount:        float64(sess.AmountTotal) / 100,
		Currency:      string(sess.Currency),
		PaymentStatus: string(sess.PaymentStatus),
		PaidAt:        now,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		if err == repository.ErrDuplicateKey {
			// Another reconciler inserted between our guard and our write.
			if existing, ferr := s.payments.FindByTransactionID(ctx, transactionID); ferr == nil {
				return &ReconcileResult{Success: true, Message: "Payment already processed", Payment: existing}, nil
			}
			return &ReconcileResult{Success: true, Message: "Payment already processed"}, nil
		}
		// The order is marked paid but the record insert failed; the next
		// call lands on the fallback guard. Documented weak point.
		s.logger.Error("Payment record insert failed after order update",
			zap.String("transaction_id", transactionID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, apperrors.Storage(err)
	}

	s.logger.Info("Payment reconciled",
		zap.String("transaction_id", transactionID),
		zap.String("order_id", orderID),
		zap.Float64("amount", payment.Amount),
	)

	return &ReconcileResult{Success: true, Message: "Payment processed successfully", Payment: payment}, nil
}

// ListPayments returns payment records newest-paid first. Admins see all;
// other callers see only their own and must supply their email.
func (s *PaymentService) ListPayments(ctx context.Context, caller models.Identity, email string) ([]models.Payment, *apperrors.Error) {
	var (
		payments []models.Payment
		err      error
	)
	if caller.IsAdmin() {
		payments, err = s.payments.FindAll(ctx)
	} else {
		if email == "" {
			return nil, apperrors.Validation("Email required")
		}
		if !strings.EqualFold(email, caller.Email) {
			return nil, apperrors.Forbidden("Forbidden: Cannot access other users")
		}
		payments, err = s.payments.FindByCustomerEmail(ctx, email)
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// customerEmail prefers the email the session was created with and falls
// back to what the customer entered at checkout.
func customerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerEmail != "" {
		return sess.CustomerEmail
	}
	if sess.CustomerDetails != nil {
		return sess.CustomerDetails.Email
	}
	return ""
}
