package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/auth"
	"github.com/devcampr/devcampr/internal/pkg/email"
	"github.com/devcampr/devcampr/internal/pkg/logger"
)

// AuthService defines the registration, session and password flows.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error)
	UpdateDetails(ctx context.Context, user *models.User, req *dto.UpdateDetailsRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, user *models.User, req *dto.UpdatePasswordRequest) (string, error)
	ForgotPassword(ctx context.Context, emailAddr, resetURLBase string) error
	ResetPassword(ctx context.Context, token, password string) (*models.User, string, error)
}

type authService struct {
	users         UserStore
	jwt           *auth.JWTService
	mailer        email.Sender
	resetTokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, jwt *auth.JWTService, mailer email.Sender, resetTokenTTL time.Duration) AuthService {
	return &authService{
		users:         users,
		jwt:           jwt,
		mailer:        mailer,
		resetTokenTTL: resetTokenTTL,
	}
}

// Register creates an account and returns it with a signed session token.
// The public surface only admits the user and publisher roles.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, "", apperrors.NewValidationError(fmt.Sprintf("role %q cannot be registered", req.Role))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		Password: hash,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, "", apperrors.NewDuplicateKeyError("an account with that email already exists")
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates an account by email and password. An unknown email
// and a wrong password report identically, so the surface does not leak
// which accounts exist.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateDetails changes the calling account's name and email.
func (s *authService) UpdateDetails(ctx context.Context, user *models.User, req *dto.UpdateDetailsRequest) (*models.User, error) {
	updated, err := s.users.UpdateFields(ctx, user.ID, bson.M{
		"name":  req.Name,
		"email": req.Email,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("an account with that email already exists")
		}
		return nil, err
	}
	return updated, nil
}

// UpdatePassword changes the calling account's password after verifying the
// current one, and returns a fresh session token.
func (s *authService) UpdatePassword(ctx context.Context, user *models.User, req *dto.UpdatePasswordRequest) (string, error) {
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return "", apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", err
	}
	return s.jwt.GenerateToken(user.ID.Hex())
}

// ForgotPassword starts the reset flow: a random token is generated, its
// digest stored with an expiry, and the plaintext mailed as a reset URL.
// When delivery fails the stored token is cleared so the failed attempt
// leaves no live token behind.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr, resetURLBase string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("there is no user with that email")
		}
		return err
	}

	plaintext, digest, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}
	expire := time.Now().Add(s.resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expire); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", resetURLBase, plaintext)
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("password reset email delivery failed")
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error().Err(clearErr).Str("email", user.Email).Msg("failed to clear reset token")
		}
		return apperrors.ErrEmailDeliveryFailed
	}
	return nil
}

// ResetPassword consumes a reset token: the account holding its unexpired
// digest gets the new password, the token is cleared in the same write, and
// a fresh session token is returned.
func (s *authService) ResetPassword(ctx context.Context, token, password string) (*models.User, string, error) {
	user, err := s.users.GetByResetToken(ctx, auth.HashResetToken(token))
	if err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, "", err
	}

	signed, err := s.jwt.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}
