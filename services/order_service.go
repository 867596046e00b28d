package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// CreateOrderRequest carries the caller-supplied line-item fields. The
// display data is denormalized onto the order and never re-derived.
type CreateOrderRequest struct {
	UserEmail string  `json:"userEmail" binding:"required,email"`
	ChefID    string  `json:"chefId" binding:"required"`
	FoodID    string  `json:"foodId"`
	MealName  string  `json:"mealName" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Address   string  `json:"address"`
}

// TransitionResult is the outcome of a status transition request. A
// disallowed transition is a descriptive non-fatal outcome for the
// operator UI, not a server error.
type TransitionResult struct {
	Updated bool   `json:"-"`
	Message string `json:"message"`
}

// OrderService orchestrates order creation, listing and the status state
// machine.
type OrderService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	tracking *TrackingService
	logger   *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, tracking *TrackingService, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, users: users, tracking: tracking, logger: logger}
}

// generateTrackingID mints a date-stamped tracking id: LCB-YYYYMMDD- plus
// 3 random bytes hex-encoded. 16.7M combinations per day; the unique
// index on trackingId reports the (practically impossible) collision
// rather than silently overwriting.
func generateTrackingID(now time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("LCB-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}

// CreateOrder validates the account standing, mints a tracking id, writes
// the initial order and appends the order_pending tracking event. The
// tracking append happens after the order is durably stored and is not
// part of the same atomic unit; its failure never rolls back the order.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, *apperrors.Error) {
	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}
	if user == nil || user.Status != models.StatusActive {
		return nil, apperrors.Forbidden("User account is not active")
	}

	now := time.Now()
	order := &models.Order{
		UserEmail:     email,
		ChefID:        req.ChefID,
		MealName:      req.MealName,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Address:       req.Address,
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentStatusPending,
		TrackingID:    generateTrackingID(now),
		OrderTime:     now,
	}
	if req.FoodID != "" {
		foodID, err := primitive.ObjectIDFromHex(req.FoodID)
		if err != nil {
			return nil, apperrors.Validation("Invalid food id")
		}
		order.FoodID = foodID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if err == repository.ErrDuplicateKey {
			return nil, apperrors.Conflict("Tracking id collision, please retry")
		}
		return nil, apperrors.Storage(err)
	}

	s.recordTracking(ctx, order.TrackingID, "order_pending")

	return order, nil
}

// ListForAccount returns the caller's orders joined with meal display
// fields, newest first. Non-admin callers may only list themselves.
func (s *OrderService) ListForAccount(ctx context.Context, caller models.Identity, email string) ([]models.OrderSummary, *apperrors.Error) {
	if email == "" {
		return nil, apperrors.Validation("Email required")
	}
	if !caller.IsAdmin() && !strings.EqualFold(email, caller.Email) {
		return nil, apperrors.Forbidden("Forbidden: Cannot access other users")
	}

	summaries, err := s.orders.FindSummariesByUserEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if summaries == nil {
		summaries = []models.OrderSummary{}
	}
	return summaries, nil
}

// ListForChef returns a chef's incoming orders, newest first.
func (s *OrderService) ListForChef(ctx context.Context, chefID string) ([]models.Order, *apperrors.Error) {
	if chefID == "" {
		return nil, apperrors.Validation("Chef id required")
	}
	orders, err := s.orders.FindByChefID(ctx, chefID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// ListAll returns every order; admin only.
func (s *OrderService) ListAll(ctx context.Context, caller models.Identity) ([]models.Order, *apperrors.Error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("forbidden")
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Transition applies a chef/admin-driven status change under the
// transition rules:
//
//	pending   -> accepted | cancelled
//	accepted  -> delivered | cancelled
//	delivered, cancelled -> (terminal)
//
// The write is conditioned on the status being unchanged since it was
// read, so two racing calls cannot both move the order.
func (s *OrderService) Transition(ctx context.Context, orderID, requested string) (*TransitionResult, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.Validation("Invalid order id")
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	if order.OrderStatus == models.OrderCancelled || order.OrderStatus == models.OrderDelivered {
		return &TransitionResult{Message: "Order cannot be updated"}, nil
	}
	switch requested {
	case models.OrderAccepted:
		if order.OrderStatus != models.OrderPending {
			return &TransitionResult{Message: "Invalid transition"}, nil
		}
	case models.OrderDelivered:
		if order.OrderStatus != models.OrderAccepted {
			return &TransitionResult{Message: "Order must be accepted first"}, nil
		}
	case models.OrderCancelled:
		// allowed from any non-terminal state
	default:
		return &TransitionResult{Message: "Invalid transition"}, nil
	}

	applied, err := s.orders.UpdateStatusIfCurrent(ctx, oid, order.OrderStatus, requested)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if !applied {
		// Lost the race against a concurrent transition; the caller can
		// re-read and retry.
		return &TransitionResult{Message: "Order was updated concurrently"}, nil
	}

	s.recordTracking(ctx, order.TrackingID, "order_"+requested)

	return &TransitionResult{Updated: true, Message: "Order updated"}, nil
}

// recordTracking appends a tracking event as an explicit best-effort side
// effect: a tracking-log failure is logged and never propagated as the
// primary operation's failure.
func (s *OrderService) recordTracking(ctx context.Context, trackingID, status string) {
	if _, err := s.tracking.Record(ctx, trackingID, status); err != nil {
		s.logger.Warn("Failed to record tracking event",
			zap.String("tracking_id", trackingID),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}
