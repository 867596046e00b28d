package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/services"
)

// AuthController issues access tokens.
type AuthController struct {
	Tokens *services.TokenService
}

// IssueToken handles POST /auth/token.
func (ac *AuthController) IssueToken(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid email required"})
		return
	}

	token, err := ac.Tokens.IssueToken(c, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
