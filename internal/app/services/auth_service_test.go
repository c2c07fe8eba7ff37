package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/auth"
)

func newAuthFixture(mailer *fakeMailer) (AuthService, *fakeUserStore, *auth.JWTService) {
	users := newFakeUserStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})
	svc := NewAuthService(users, jwtService, mailer, 10*time.Minute)
	return svc, users, jwtService
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "John Doe",
		Email:    "john@devcampr.app",
		Password: "123456",
		Role:     "publisher",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _, jwtService := newAuthFixture(&fakeMailer{})

	user, token, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.RolePublisher, user.Role)
	assert.NotEqual(t, "123456", user.Password)

	subject, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), subject)
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	req := registerRequest()
	req.Role = ""
	user, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	req := registerRequest()
	req.Role = "admin"
	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	_, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})
	_, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "john@devcampr.app", Password: "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "john@devcampr.app", user.Email)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})
	_, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@devcampr.app", Password: "123456",
	})
	_, _, wrongErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "john@devcampr.app", Password: "wrong",
	})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestUpdatePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})
	user, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.UpdatePassword(context.Background(), user, &dto.UpdatePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "abcdef",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	token, err := svc.UpdatePassword(context.Background(), user, &dto.UpdatePasswordRequest{
		CurrentPassword: "123456", NewPassword: "abcdef",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "john@devcampr.app", Password: "abcdef",
	})
	assert.NoError(t, err)
}

func TestForgotPasswordStoresDigestNotPlaintext(t *testing.T) {
	mailer := &fakeMailer{}
	svc, users, _ := newAuthFixture(mailer)
	user, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), user.Email, "http://localhost:5000"))
	require.Len(t, mailer.sent, 1)

	resetURL := mailer.sent[0]
	parts := strings.Split(resetURL, "/")
	plaintext := parts[len(parts)-1]

	assert.Contains(t, resetURL, "/api/v1/auth/resetpassword/")
	assert.NotEqual(t, plaintext, users.resetToken[user.ID])
	assert.Equal(t, auth.HashResetToken(plaintext), users.resetToken[user.ID])
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	err := svc.ForgotPassword(context.Background(), "nobody@devcampr.app", "http://localhost:5000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestForgotPasswordClearsTokenOnDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}
	svc, users, _ := newAuthFixture(mailer)
	user, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	err = svc.ForgotPassword(context.Background(), user.Email, "http://localhost:5000")
	assert.ErrorIs(t, err, apperrors.ErrEmailDeliveryFailed)
	assert.NotContains(t, users.resetToken, user.ID)
}

func TestResetPassword(t *testing.T) {
	mailer := &fakeMailer{}
	svc, users, _ := newAuthFixture(mailer)
	user, _, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), user.Email, "http://localhost:5000"))
	parts := strings.Split(mailer.sent[0], "/")
	plaintext := parts[len(parts)-1]

	reset, token, err := svc.ResetPassword(context.Background(), plaintext, "newpass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, reset.ID)
	assert.NotEmpty(t, token)
	assert.NotContains(t, users.resetToken, user.ID)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: user.Email, Password: "newpass",
	})
	assert.NoError(t, err)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeMailer{})

	_, _, err := svc.ResetPassword(context.Background(), "bogus", "newpass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}
