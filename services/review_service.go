package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// homeReviewMinRating and homeReviewSample shape the landing-page
// testimonial carousel.
const (
	homeReviewMinRating = 4.0
	homeReviewSample    = 4
)

// ReviewService handles reviews and favorites.
type ReviewService struct {
	reviews   repository.ReviewRepository
	favorites repository.FavoriteRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews repository.ReviewRepository, favorites repository.FavoriteRepository) *ReviewService {
	return &ReviewService{reviews: reviews, favorites: favorites}
}

// AddReview records one review per (meal, user).
func (s *ReviewService) AddReview(ctx context.Context, review *models.Review) (*models.Review, *apperrors.Error) {
	review.UserEmail = strings.ToLower(strings.TrimSpace(review.UserEmail))
	if review.FoodID == "" || review.UserEmail == "" {
		return nil, apperrors.Validation("Meal id and email required")
	}

	if _, err := s.reviews.FindByMealAndUser(ctx, review.FoodID, review.UserEmail); err == nil {
		return nil, apperrors.Validation("You have already reviewed this meal")
	} else if err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}

	review.Date = time.Now()
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.Storage(err)
	}
	return review, nil
}

// ListForMeal returns a meal's reviews, newest first.
func (s *ReviewService) ListForMeal(ctx context.Context, mealID string) ([]models.Review, *apperrors.Error) {
	reviews, err := s.reviews.FindByMealID(ctx, mealID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// ListForUser returns the caller's reviews joined with meal names.
func (s *ReviewService) ListForUser(ctx context.Context, email string) ([]models.UserReview, *apperrors.Error) {
	reviews, err := s.reviews.FindByUserEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if reviews == nil {
		reviews = []models.UserReview{}
	}
	return reviews, nil
}

// HomeReviews returns a random sample of highly rated reviews.
func (s *ReviewService) HomeReviews(ctx context.Context) ([]models.Review, *apperrors.Error) {
	reviews, err := s.reviews.SampleTopRated(ctx, homeReviewMinRating, homeReviewSample)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// UpdateReview rewrites a review's rating and comment.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, rating float64, comment string) (bool, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperrors.Validation("Invalid review id")
	}
	modified, err := s.reviews.Update(ctx, oid, rating, comment)
	if err != nil {
		return false, apperrors.Storage(err)
	}
	return modified > 0, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) (bool, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperrors.Validation("Invalid review id")
	}
	deleted, err := s.reviews.Delete(ctx, oid)
	if err != nil {
		return false, apperrors.Storage(err)
	}
	return deleted > 0, nil
}

// AddFavorite bookmarks a meal once per user.
func (s *ReviewService) AddFavorite(ctx context.Context, favorite *models.Favorite) (*models.Favorite, *apperrors.Error) {
	favorite.UserEmail = strings.ToLower(strings.TrimSpace(favorite.UserEmail))
	if favorite.UserEmail == "" || favorite.MealID == "" {
		return nil, apperrors.Validation("Email and meal id required")
	}

	if _, err := s.favorites.FindByUserAndMeal(ctx, favorite.UserEmail, favorite.MealID); err == nil {
		return nil, apperrors.Validation("Meal already in favorites")
	} else if err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}

	favorite.AddedTime = time.Now()
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, apperrors.Storage(err)
	}
	return favorite, nil
}

// ListFavorites returns the caller's favorites, newest first.
func (s *ReviewService) ListFavorites(ctx context.Context, email string) ([]models.Favorite, *apperrors.Error) {
	if email == "" {
		return nil, apperrors.Validation("Email required")
	}
	favorites, err := s.favorites.FindByUserEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}

// RemoveFavorite deletes a favorite by id.
func (s *ReviewService) RemoveFavorite(ctx context.Context, id string) *apperrors.Error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid favorite id")
	}
	deleted, err := s.favorites.Delete(ctx, oid)
	if err != nil {
		return apperrors.Storage(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Favorite meal not found")
	}
	return nil
}
