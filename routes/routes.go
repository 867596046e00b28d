package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/controllers"
	"github.com/localchef/bazaar-backend/middleware"
)

// RegisterRoutes wires every endpoint onto the engine. Public routes
// carry no middleware; everything else sits behind the bearer-token
// check.
func RegisterRoutes(
	r *gin.Engine,
	jwtSecret string,
	auth *controllers.AuthController,
	users *controllers.UserController,
	meals *controllers.MealController,
	reviews *controllers.ReviewController,
	orders *controllers.OrderController,
	payments *controllers.PaymentController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Public surface: browsing, registration and token issuance.
	r.POST("/auth/token", auth.IssueToken)
	r.POST("/users", users.Register)
	r.GET("/users/:email/role", users.RoleAndStatus)
	r.GET("/meals-paginated", meals.ListPaginated)
	r.GET("/meals/home", meals.ListHome)
	r.GET("/meals/:id", meals.Get)
	r.POST("/meals/:id/review", reviews.Add)
	r.GET("/meals/:id/reviews", reviews.ListForMeal)
	r.GET("/reviews/home", reviews.Home)
	r.GET("/trackings/:trackingId", orders.TrackingHistory)

	protected := r.Group("/")
	protected.Use(middleware.Auth(jwtSecret))

	// Accounts and role requests.
	protected.GET("/users", users.Get)
	protected.PATCH("/users/fraud/:id", users.MarkFraud)
	protected.POST("/role-requests", users.RequestRole)
	protected.GET("/role-requests", users.ListRoleRequests)
	protected.PATCH("/role-requests/:id", users.ResolveRoleRequest)

	// Chef meal management.
	protected.POST("/meals", meals.Create)
	protected.GET("/meals", meals.ListByOwner)
	protected.PUT("/meals/:id", meals.Update)
	protected.DELETE("/meals/:id", meals.Delete)

	// Reviews and favorites.
	protected.GET("/my-reviews", reviews.ListForUser)
	protected.PATCH("/reviews/:id", reviews.Update)
	protected.DELETE("/reviews/:id", reviews.Delete)
	protected.POST("/favorites", reviews.AddFavorite)
	protected.GET("/favorites", reviews.ListFavorites)
	protected.DELETE("/favorites/:id", reviews.RemoveFavorite)

	// Order lifecycle and tracking.
	protected.POST("/orders", orders.Create)
	protected.GET("/orders", orders.ListMine)
	protected.GET("/orders/all", orders.ListAll)
	protected.GET("/chef/orders", orders.ListForChef)
	protected.PATCH("/orders/:id/status", orders.UpdateStatus)

	// Checkout and reconciliation.
	protected.POST("/create-checkout-session", payments.CreateCheckoutSession)
	protected.PATCH("/payment-success", payments.PaymentSuccess)
	protected.GET("/payments", payments.List)
}
