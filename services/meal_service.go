package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// MealCreateRequest carries a chef's new listing.
type MealCreateRequest struct {
	UserEmail             string   `json:"userEmail" binding:"required,email"`
	ChefID                string   `json:"chefId" binding:"required"`
	FoodName              string   `json:"foodName" binding:"required"`
	FoodImage             string   `json:"foodImage"`
	Price                 float64  `json:"price" binding:"required,gt=0"`
	Rating                float64  `json:"rating"`
	Ingredients           string   `json:"ingredients"`
	DeliveryArea          []string `json:"deliveryArea"`
	EstimatedDeliveryTime string   `json:"estimatedDeliveryTime"`
	ChefExperience        string   `json:"chefExperience"`
}

// ListMealsParams defines the public paginated listing query.
type ListMealsParams struct {
	Page   int
	Limit  int
	Sort   string // "asc" or "desc" by price
	Search string // case-insensitive name match
}

// MealService handles meal listings.
type MealService struct {
	meals repository.MealRepository
	users repository.UserRepository
}

// NewMealService creates a MealService.
func NewMealService(meals repository.MealRepository, users repository.UserRepository) *MealService {
	return &MealService{meals: meals, users: users}
}

// Create adds a listing. Only accounts holding the chef role with a
// matching chef id may create meals; chef display data is denormalized
// onto the meal.
func (s *MealService) Create(ctx context.Context, req *MealCreateRequest) (*models.Meal, *apperrors.Error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.UserEmail)))
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}
	if user == nil || user.Role != models.RoleChef || user.ChefID != req.ChefID {
		return nil, apperrors.Forbidden("Only chefs can create meals")
	}

	meal := &models.Meal{
		FoodName:              req.FoodName,
		FoodImage:             req.FoodImage,
		ChefName:              user.DisplayName,
		ChefID:                user.ChefID,
		UserEmail:             user.Email,
		Price:                 req.Price,
		Rating:                req.Rating,
		Ingredients:           req.Ingredients,
		DeliveryArea:          req.DeliveryArea,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		ChefExperience:        req.ChefExperience,
		Status:                "available",
		CreatedAt:             time.Now(),
	}
	if meal.DeliveryArea == nil {
		meal.DeliveryArea = []string{}
	}

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, apperrors.Storage(err)
	}
	return meal, nil
}

// ListByOwner returns a chef's own meals. Callers may list only
// themselves.
func (s *MealService) ListByOwner(ctx context.Context, caller models.Identity, userEmail string) ([]models.Meal, *apperrors.Error) {
	if !strings.EqualFold(userEmail, caller.Email) {
		return nil, apperrors.Forbidden("Forbidden: Cannot access other users")
	}
	meals, err := s.meals.Find(ctx, bson.M{"userEmail": strings.ToLower(strings.TrimSpace(userEmail))}, nil)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

// ListPaginated is the public browsing surface: price-sorted pages with
// an optional case-insensitive name search.
func (s *MealService) ListPaginated(ctx context.Context, params ListMealsParams) (*models.PaginatedMeals, *apperrors.Error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 8
	}

	filter := bson.M{}
	if params.Search != "" {
		filter["foodName"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	sortDir := 1
	if params.Sort == "desc" {
		sortDir = -1
	}

	total, err := s.meals.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	findOptions := options.Find().
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "price", Value: sortDir}})

	meals, err := s.meals.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}

	totalPages := total / int64(params.Limit)
	if total%int64(params.Limit) != 0 {
		totalPages++
	}

	return &models.PaginatedMeals{
		Meals:       meals,
		TotalMeals:  total,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}, nil
}

// ListHome returns the six newest listings for the landing page.
func (s *MealService) ListHome(ctx context.Context) ([]models.Meal, *apperrors.Error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(6)
	meals, err := s.meals.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

// Get returns one meal by id.
func (s *MealService) Get(ctx context.Context, id string) (*models.Meal, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid meal id")
	}
	meal, err := s.meals.FindByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Meal not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return meal, nil
}

// Update applies caller-supplied field updates to a meal.
func (s *MealService) Update(ctx context.Context, id string, updates bson.M) *apperrors.Error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid meal id")
	}
	delete(updates, "_id")
	if _, err := s.meals.Update(ctx, oid, updates); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// Delete removes a meal. Orders and reviews keep their denormalized
// snapshot of it.
func (s *MealService) Delete(ctx context.Context, id string) *apperrors.Error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid meal id")
	}
	deleted, err := s.meals.Delete(ctx, oid)
	if err != nil {
		return apperrors.Storage(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Meal not found")
	}
	return nil
}
