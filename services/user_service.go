package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/localchef/bazaar-backend/models"
	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/repository"
)

// RoleStatus is the account-standing lookup consumed by order creation
// and by the frontend's role gate.
type RoleStatus struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

// UserService handles accounts and the role-request workflow.
type UserService struct {
	users    repository.UserRepository
	requests repository.RoleRequestRepository
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, requests repository.RoleRequestRepository) *UserService {
	return &UserService{users: users, requests: requests}
}

// Register creates an account with the default role and active standing.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, *apperrors.Error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return nil, apperrors.Validation("Email required")
	}
	user.Role = models.RoleUser
	user.Status = models.StatusActive
	user.CreatedAt = time.Now()

	if err := s.users.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateKey {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Storage(err)
	}
	return user, nil
}

// GetByEmail returns one account. Callers may read only themselves;
// admins may read anyone.
func (s *UserService) GetByEmail(ctx context.Context, caller models.Identity, email string) (*models.User, *apperrors.Error) {
	if !caller.IsAdmin() && !strings.EqualFold(email, caller.Email) {
		return nil, apperrors.Forbidden("Forbidden: Cannot access other users")
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return user, nil
}

// ListAll returns every account, newest first; admin only.
func (s *UserService) ListAll(ctx context.Context, caller models.Identity) ([]models.User, *apperrors.Error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Forbidden")
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// RoleAndStatus reports an account's role and standing with the defaults
// applied for unknown accounts.
func (s *UserService) RoleAndStatus(ctx context.Context, email string) (*RoleStatus, *apperrors.Error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == mongo.ErrNoDocuments {
		return &RoleStatus{Role: models.RoleUser, Status: models.StatusActive}, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	rs := &RoleStatus{Role: user.Role, Status: user.Status}
	if rs.Role == "" {
		rs.Role = models.RoleUser
	}
	if rs.Status == "" {
		rs.Status = models.StatusActive
	}
	return rs, nil
}

// MarkFraud flags an account as fraudulent; admin only. A fraud account
// can no longer place orders.
func (s *UserService) MarkFraud(ctx context.Context, caller models.Identity, id string) *apperrors.Error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("Forbidden")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid user id")
	}
	if err := s.users.SetStatusByID(ctx, oid, models.StatusFraud); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Storage(err)
	}
	return nil
}

// RequestRole files a role-change request. A user may hold at most one
// pending request; the pending state is mirrored onto the user document.
func (s *UserService) RequestRole(ctx context.Context, request *models.RoleRequest) (*models.RoleRequest, *apperrors.Error) {
	request.UserEmail = strings.ToLower(strings.TrimSpace(request.UserEmail))
	if request.UserEmail == "" || request.RequestType == "" {
		return nil, apperrors.Validation("Email and request type required")
	}

	if _, err := s.requests.FindPendingByEmail(ctx, request.UserEmail); err == nil {
		return nil, apperrors.Conflict("You already have a pending role request")
	} else if err != mongo.ErrNoDocuments {
		return nil, apperrors.Storage(err)
	}

	request.RequestStatus = models.RequestPending
	request.CreatedAt = time.Now()
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.Storage(err)
	}

	if err := s.users.UpdateByEmail(ctx, request.UserEmail, bson.M{
		"requestedRole": request.RequestType,
		"requestStatus": models.RequestPending,
	}, nil); err != nil {
		return nil, apperrors.Storage(err)
	}

	return request, nil
}

// PendingRequest returns the caller's pending request, or nil when there
// is none.
func (s *UserService) PendingRequest(ctx context.Context, email string) (*models.RoleRequest, *apperrors.Error) {
	request, err := s.requests.FindPendingByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return request, nil
}

// ListRoleRequests returns all requests newest first; admin only.
func (s *UserService) ListRoleRequests(ctx context.Context, caller models.Identity) ([]models.RoleRequest, *apperrors.Error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("Forbidden")
	}
	requests, err := s.requests.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if requests == nil {
		requests = []models.RoleRequest{}
	}
	return requests, nil
}

// ResolveRoleRequest approves or rejects a request; admin only. Approval
// promotes the user's role and, for chefs, mints the chef id used across
// meals and orders. Both outcomes clear the mirrored pending state.
func (s *UserService) ResolveRoleRequest(ctx context.Context, caller models.Identity, id, status string) *apperrors.Error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("Forbidden")
	}
	if status != models.RequestApproved && status != models.RequestRejected {
		return apperrors.Validation("Invalid status")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid request id")
	}

	request, err := s.requests.FindByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return apperrors.NotFound("Role request not found")
	}
	if err != nil {
		return apperrors.Storage(err)
	}

	if err := s.requests.SetStatus(ctx, oid, status); err != nil {
		return apperrors.Storage(err)
	}

	set := bson.M{"requestStatus": status}
	if status == models.RequestApproved {
		set["role"] = request.RequestType
		if request.RequestType == models.RoleChef {
			set["chefId"] = fmt.Sprintf("CHEF-%d", time.Now().UnixMilli())
		}
	}
	unset := bson.M{"requestedRole": ""}

	if err := s.users.UpdateByEmail(ctx, request.UserEmail, set, unset); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}
