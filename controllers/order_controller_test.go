package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/localchef/bazaar-backend/controllers"
	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/services"
)

func newOrderRouter(orders *stubOrderRepo, users *stubUserRepo, trackings *stubTrackingRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	zap.ReplaceGlobals(logger)

	trackingService := services.NewTrackingService(trackings)
	orderService := services.NewOrderService(orders, users, trackingService, logger)
	oc := &controllers.OrderController{Orders: orderService, Tracking: trackingService}

	r := gin.New()
	r.POST("/orders", oc.Create)
	r.PATCH("/orders/:id/status", oc.UpdateStatus)
	r.GET("/trackings/:trackingId", oc.TrackingHistory)
	return r
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	orders := newStubOrderRepo()
	users := &stubUserRepo{user: &models.User{Email: "alice@example.com", Role: models.RoleUser, Status: models.StatusActive}}
	trackings := &stubTrackingRepo{}
	r := newOrderRouter(orders, users, trackings)

	body := `{"userEmail":"alice@example.com","chefId":"CHEF-1","mealName":"Butter Chicken","price":12.5,"quantity":2,"address":"12 Rose St"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.OrderPending, resp.Order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, resp.Order.PaymentStatus)
	assert.NotEmpty(t, resp.Order.TrackingID)
	assert.Len(t, trackings.appended, 1)
}

func TestCreateOrderEndpoint_InactiveAccount(t *testing.T) {
	users := &stubUserRepo{user: &models.User{Email: "alice@example.com", Status: models.StatusFraud}}
	r := newOrderRouter(newStubOrderRepo(), users, &stubTrackingRepo{})

	body := `{"userEmail":"alice@example.com","chefId":"CHEF-1","mealName":"Ramen","price":11,"quantity":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User account is not active")
}

func TestCreateOrderEndpoint_BadPayload(t *testing.T) {
	r := newOrderRouter(newStubOrderRepo(), &stubUserRepo{}, &stubTrackingRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"userEmail":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpoint_RejectionIsOK(t *testing.T) {
	orders := newStubOrderRepo()
	id := orders.add(&models.Order{
		OrderStatus:   models.OrderDelivered,
		PaymentStatus: models.PaymentStatusPending,
		TrackingID:    "LCB-20260831-ABCDEF",
	})
	r := newOrderRouter(orders, &stubUserRepo{}, &stubTrackingRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+id.Hex()+"/status", strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Disallowed transitions come back 200 with the rejection message.
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Order cannot be updated", resp.Message)
	assert.Equal(t, models.OrderDelivered, orders.orders[id].OrderStatus)
}

func TestUpdateStatusEndpoint_Applies(t *testing.T) {
	orders := newStubOrderRepo()
	trackings := &stubTrackingRepo{}
	id := orders.add(&models.Order{
		OrderStatus:   models.OrderPending,
		PaymentStatus: models.PaymentStatusPending,
		TrackingID:    "LCB-20260831-ABCDEF",
	})
	r := newOrderRouter(orders, &stubUserRepo{}, trackings)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+id.Hex()+"/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order updated")
	assert.Equal(t, models.OrderAccepted, orders.orders[id].OrderStatus)
	require.Len(t, trackings.appended, 1)
	assert.Equal(t, "order_accepted", trackings.appended[0].Status)
}

func TestTrackingHistoryEndpoint(t *testing.T) {
	trackings := &stubTrackingRepo{appended: []models.TrackingEvent{
		{TrackingID: "LCB-20260831-ABCDEF", Status: "order_pending", Details: "order pending"},
		{TrackingID: "LCB-20260831-ABCDEF", Status: "order_accepted", Details: "order accepted"},
		{TrackingID: "LCB-20260831-FFFFFF", Status: "order_pending", Details: "order pending"},
	}}
	r := newOrderRouter(newStubOrderRepo(), &stubUserRepo{}, trackings)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trackings/LCB-20260831-ABCDEF", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var events []models.TrackingEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "order_pending", events[0].Status)
	assert.Equal(t, "order_accepted", events[1].Status)
}

func TestTrackingHistoryEndpoint_UnknownIDIsEmptyList(t *testing.T) {
	r := newOrderRouter(newStubOrderRepo(), &stubUserRepo{}, &stubTrackingRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/trackings/LCB-20260831-000000", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
