package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/controllers"
	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/services"
)

func newPaymentRouter(payments *stubPaymentRepo, orders *stubOrderRepo, checkout *stubCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)

	paymentService := services.NewPaymentService(payments, orders, checkout, logger)
	pc := &controllers.PaymentController{Payments: paymentService}

	r := gin.New()
	r.PATCH("/payment-success", pc.PaymentSuccess)
	return r
}

func settledSession(orderID string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_endpoint_1"},
		Metadata:      map[string]string{"orderId": orderID, "mealName": "Butter Chicken"},
		AmountTotal:   2500,
		Currency:      stripe.CurrencyUSD,
		CustomerEmail: "alice@example.com",
	}
}

func reconcileOnce(t *testing.T, r *gin.Engine, sessionID string) services.ReconcileResult {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/payment-success?session_id="+sessionID, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result services.ReconcileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestPaymentSuccessEndpoint_MissingSessionID(t *testing.T) {
	r := newPaymentRouter(newStubPaymentRepo(), newStubOrderRepo(), &stubCheckout{})

	result := reconcileOnce(t, r, "")

	assert.False(t, result.Success)
	assert.Equal(t, "No session ID", result.Message)
}

func TestPaymentSuccessEndpoint_RepeatedCallsRecordOnePayment(t *testing.T) {
	payments := newStubPaymentRepo()
	orders := newStubOrderRepo()
	id := orders.add(&models.Order{
		UserEmail:     "alice@example.com",
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentStatusPending,
		TrackingID:    "LCB-20260831-ABCDEF",
	})
	r := newPaymentRouter(payments, orders, &stubCheckout{session: settledSession(id.Hex())})

	first := reconcileOnce(t, r, "cs_endpoint_1")
	assert.True(t, first.Success)
	assert.Equal(t, "Payment processed successfully", first.Message)
	require.NotNil(t, first.Payment)
	assert.Equal(t, 25.0, first.Payment.Amount)

	second := reconcileOnce(t, r, "cs_endpoint_1")
	assert.True(t, second.Success)
	assert.Equal(t, "Payment already processed", second.Message)

	assert.Len(t, payments.byTxn, 1)
	assert.Equal(t, models.PaymentStatusPaid, orders.orders[id].PaymentStatus)
}

func TestPaymentSuccessEndpoint_UnpaidSession(t *testing.T) {
	orders := newStubOrderRepo()
	id := orders.add(&models.Order{
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentStatusPending,
	})
	sess := settledSession(id.Hex())
	sess.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid
	payments := newStubPaymentRepo()
	r := newPaymentRouter(payments, orders, &stubCheckout{session: sess})

	result := reconcileOnce(t, r, "cs_endpoint_2")

	assert.False(t, result.Success)
	assert.Equal(t, "Invalid or unpaid session", result.Message)
	assert.Empty(t, payments.byTxn)
	assert.Equal(t, models.PaymentStatusPending, orders.orders[id].PaymentStatus)
}
