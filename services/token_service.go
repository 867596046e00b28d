package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// tokenTTL is the lifetime of an issued access token.
const tokenTTL = time.Hour

// TokenService issues the short-lived access tokens the middleware
// validates. The caller's role is resolved at issuance so that every
// capability check downstream works from the token alone.
type TokenService struct {
	secret []byte
	users  repository.UserRepository
}

// NewTokenService creates a TokenService.
func NewTokenService(secret string, users repository.UserRepository) *TokenService {
	return &TokenService{secret: []byte(secret), users: users}
}

// IssueToken signs a one-hour HS256 token for the email. Unknown
// accounts get the default user role; registration is a separate step.
func (s *TokenService) IssueToken(ctx context.Context, email string) (string, *apperrors.Error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apperrors.Validation("Email required")
	}

	role := models.RoleUser
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && err != mongo.ErrNoDocuments {
		return "", apperrors.Storage(err)
	}
	if user != nil && user.Role != "" {
		role = user.Role
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, signErr := token.SignedString(s.secret)
	if signErr != nil {
		return "", apperrors.Storage(signErr)
	}
	return signed, nil
}
