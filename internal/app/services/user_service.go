package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/repositories"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/auth"
	"github.com/devcampr/devcampr/internal/pkg/query"
)

// UserService defines the admin-only account management operations.
type UserService interface {
	List(ctx context.Context, q *query.ListQuery) ([]*models.User, int64, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) UserService {
	return &userService{users: users}
}

// List returns a page of accounts.
func (s *userService) List(ctx context.Context, q *query.ListQuery) ([]*models.User, int64, error) {
	return s.users.List(ctx, q)
}

// Get returns a single account.
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundUser(id, apperrors.ErrNotFound)
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundUser(id, err)
	}
	return user, nil
}

// Create adds an account. The admin surface may assign any role, including
// admin. The password is hashed before the write.
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		Password: hash,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("an account with that email already exists")
		}
		return nil, err
	}
	return created, nil
}

// Update applies a partial update to an account. Passwords change through
// the auth surface, never here.
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, notFoundUser(id, apperrors.ErrNotFound)
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	user, err := s.users.UpdateFields(ctx, oid, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("an account with that email already exists")
		}
		return nil, notFoundUser(id, err)
	}
	return user, nil
}

// Delete removes an account.
func (s *userService) Delete(ctx context.Context, id string) error {
	oid, err := repositories.ParseObjectID(id)
	if err != nil {
		return notFoundUser(id, apperrors.ErrNotFound)
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return notFoundUser(id, err)
	}
	return nil
}

func notFoundUser(id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("User not found with id of %s", id))
	}
	return err
}
