package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/middleware"
	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/services"
)

// UserController exposes account and role-request endpoints.
type UserController struct {
	Users *services.UserService
}

// Register handles POST /users.
func (uc *UserController) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user payload"})
		return
	}

	created, svcErr := uc.Users.Register(c, &user)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /users. With an email query it returns that account
// (self or admin); without one it is the admin listing.
func (uc *UserController) Get(c *gin.Context) {
	caller := middleware.CallerIdentity(c)

	if email := c.Query("email"); email != "" {
		user, svcErr := uc.Users.GetByEmail(c, caller, email)
		if svcErr != nil {
			respondError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	users, svcErr := uc.Users.ListAll(c, caller)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, users)
}

// RoleAndStatus handles GET /users/:email/role. The frontend's role gate
// polls this, so unknown accounts get the defaults instead of a 404.
func (uc *UserController) RoleAndStatus(c *gin.Context) {
	roleStatus, svcErr := uc.Users.RoleAndStatus(c, c.Param("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, roleStatus)
}

// MarkFraud handles PATCH /users/fraud/:id (admin).
func (uc *UserController) MarkFraud(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	if svcErr := uc.Users.MarkFraud(c, caller, c.Param("id")); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User marked as fraud"})
}

// RequestRole handles POST /role-requests.
func (uc *UserController) RequestRole(c *gin.Context) {
	var request models.RoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
		return
	}

	created, svcErr := uc.Users.RequestRole(c, &request)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListRoleRequests handles GET /role-requests. With an email query it
// returns that user's pending request; without one it is the admin
// listing.
func (uc *UserController) ListRoleRequests(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		request, svcErr := uc.Users.PendingRequest(c, email)
		if svcErr != nil {
			respondError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"hasPending": request != nil, "request": request})
		return
	}

	caller := middleware.CallerIdentity(c)
	requests, svcErr := uc.Users.ListRoleRequests(c, caller)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ResolveRoleRequest handles PATCH /role-requests/:id (admin).
func (uc *UserController) ResolveRoleRequest(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status required"})
		return
	}

	caller := middleware.CallerIdentity(c)
	if svcErr := uc.Users.ResolveRoleRequest(c, caller, c.Param("id"), body.Status); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request " + body.Status})
}
