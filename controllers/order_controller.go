package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/middleware"
	"github.com/localchef/bazaar-backend/services"
)

// OrderController exposes order lifecycle and tracking endpoints.
type OrderController struct {
	Orders   *services.OrderService
	Tracking *services.TrackingService
}

// Create handles POST /orders.
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order payload"})
		return
	}

	order, svcErr := oc.Orders.CreateOrder(c, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// ListMine handles GET /orders?email=, the caller's order history with
// the meal display fields joined in.
func (oc *OrderController) ListMine(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	summaries, svcErr := oc.Orders.ListForAccount(c, caller, c.Query("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// ListForChef handles GET /chef/orders?chefId=.
func (oc *OrderController) ListForChef(c *gin.Context) {
	orders, svcErr := oc.Orders.ListForChef(c, c.Query("chefId"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListAll handles GET /orders/all (admin).
func (oc *OrderController) ListAll(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	orders, svcErr := oc.Orders.ListAll(c, caller)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /orders/:id/status. A disallowed transition
// is reported as a 200 with the rejection message so the operator UI can
// surface it verbatim.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status required"})
		return
	}

	result, svcErr := oc.Orders.Transition(c, c.Param("id"), body.Status)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": result.Updated, "message": result.Message})
}

// TrackingHistory handles GET /trackings/:trackingId, the append-only
// event log for one order, oldest first.
func (oc *OrderController) TrackingHistory(c *gin.Context) {
	events, svcErr := oc.Tracking.History(c, c.Param("trackingId"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, events)
}
