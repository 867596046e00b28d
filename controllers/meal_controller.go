package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/localchef/bazaar-backend/middleware"
	"github.com/localchef/bazaar-backend/services"
)

// MealController exposes meal listing endpoints.
type MealController struct {
	Meals *services.MealService
}

// Create handles POST /meals.
func (mc *MealController) Create(c *gin.Context) {
	var req services.MealCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid meal payload"})
		return
	}

	meal, svcErr := mc.Meals.Create(c, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListByOwner handles GET /meals?email=, a chef's own listings.
func (mc *MealController) ListByOwner(c *gin.Context) {
	caller := middleware.CallerIdentity(c)
	meals, svcErr := mc.Meals.ListByOwner(c, caller, c.Query("email"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// ListPaginated handles GET /meals-paginated, the public browse surface.
func (mc *MealController) ListPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	result, svcErr := mc.Meals.ListPaginated(c, services.ListMealsParams{
		Page:   page,
		Limit:  limit,
		Sort:   c.Query("sort"),
		Search: c.Query("search"),
	})
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListHome handles GET /meals/home.
func (mc *MealController) ListHome(c *gin.Context) {
	meals, svcErr := mc.Meals.ListHome(c)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// Get handles GET /meals/:id.
func (mc *MealController) Get(c *gin.Context) {
	meal, svcErr := mc.Meals.Get(c, c.Param("id"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// Update handles PUT /meals/:id.
func (mc *MealController) Update(c *gin.Context) {
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid update payload"})
		return
	}

	if svcErr := mc.Meals.Update(c, c.Param("id"), updates); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated"})
}

// Delete handles DELETE /meals/:id.
func (mc *MealController) Delete(c *gin.Context) {
	if svcErr := mc.Meals.Delete(c, c.Param("id")); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}
