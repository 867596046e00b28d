package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localchef/bazaar-backend/middleware"
	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/services"
)

// ReviewController exposes review and favorite endpoints.
type ReviewController struct {
	Reviews *services.ReviewService
}

// Add handles POST /meals/:id/review.
func (rc *ReviewController) Add(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid review payload"})
		return
	}
	review.FoodID = c.Param("id")

	created, svcErr := rc.Reviews.AddReview(c, &review)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListForMeal handles GET /meals/:id/reviews.
func (rc *ReviewController) ListForMeal(c *gin.Context) {
	reviews, svcErr := rc.Reviews.ListForMeal(c, c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListForUser handles GET /my-reviews.
func (rc *ReviewController) ListForUser(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	reviews, svcErr := rc.Reviews.ListForUser(c, caller.Email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Home handles GET /reviews/home, the landing-page testimonial sample.
func (rc *ReviewController) Home(c *gin.Context) {
	reviews, svcErr := rc.Reviews.HomeReviews(c)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Update handles PATCH /reviews/:id.
func (rc *ReviewController) Update(c *gin.Context) {
	var body struct {
		Rating  float64 `json:"rating" binding:"required"`
		Comment string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating required"})
		return
	}

	modified, svcErr := rc.Reviews.UpdateReview(c, c.Param("id"), body.Rating, body.Comment)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if !modified {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated"})
}

// Delete handles DELETE /reviews/:id.
func (rc *ReviewController) Delete(c *gin.Context) {
	deleted, svcErr := rc.Reviews.DeleteReview(c, c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// AddFavorite handles POST /favorites.
func (rc *ReviewController) AddFavorite(c *gin.Context) {
	var favorite models.Favorite
	if err := c.ShouldBindJSON(&favorite); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid favorite payload"})
		return
	}

	created, svcErr := rc.Reviews.AddFavorite(c, &favorite)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListFavorites handles GET /favorites.
func (rc *ReviewController) ListFavorites(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	favorites, svcErr := rc.Reviews.ListFavorites(c, caller.Email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// RemoveFavorite handles DELETE /favorites/:id.
func (rc *ReviewController) RemoveFavorite(c *gin.Context) {
	if svcErr := rc.Reviews.RemoveFavorite(c, c.Param("id")); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}
