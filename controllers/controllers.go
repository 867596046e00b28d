package controllers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/pkg/logger"
)

// respondError writes a service error as JSON. Storage-class errors are
// logged with their cause; the cause itself is never sent to the client.
func respondError(c *gin.Context, err *apperrors.Error) {
	if err.Code >= 500 {
		logger.Error(c, err.Message, err.Err)
	}
	c.JSON(err.Code, gin.H{"message": err.Message})
}
