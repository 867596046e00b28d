package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/middleware"
	"github.com/localchef/bazaar-backend/services"
)

// PaymentController exposes checkout and reconciliation endpoints.
type PaymentController struct {
	Payments *services.PaymentService
}

// CreateCheckoutSession handles POST /create-checkout-session.
func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkout payload"})
		return
	}

	url, svcErr := pc.Payments.CreateCheckoutSession(c, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PaymentSuccess handles PATCH /payment-success?session_id=. The client
// is redirected here after checkout and may retry freely; every call for
// an already-settled session reports success without writing anything.
func (pc *PaymentController) PaymentSuccess(c *gin.Context) {
	result, svcErr := pc.Payments.Reconcile(c, c.Query("session_id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /payments?email=.
func (pc *PaymentController) List(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	payments, svcErr := pc.Payments.ListPayments(c, caller, c.Query("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, payments)
}
