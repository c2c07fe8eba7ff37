package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/auth"
	"github.com/devcampr/devcampr/internal/pkg/logger"
)

// HandleAPIError is the single place an error turns into an HTTP response.
// Handlers and middleware hand every failure here; the sentinel behind the
// error picks the status code and the error message becomes the body.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrDuplicateKey),
		errors.Is(err, apperrors.ErrInvalidResetToken),
		errors.Is(err, apperrors.ErrUploadRejected):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidFormat):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrEmailDeliveryFailed):
		status = http.StatusInternalServerError
	default:
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		message = "Server Error"
	}

	c.JSON(status, dto.Fail(message))
}

// HandleBindingError turns a request binding failure into a 400 with the
// per-field messages aggregated into one line.
func HandleBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, fieldErrorMessage(fe))
		}
		HandleAPIError(c, apperrors.NewValidationError(strings.Join(messages, ", ")))
		return
	}
	HandleAPIError(c, apperrors.NewValidationError(err.Error()))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please add a %s", field)
	case "email":
		return fmt.Sprintf("Please add a valid email for %s", field)
	case "url":
		return fmt.Sprintf("Please use a valid URL for %s", field)
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation on %s", field, fe.Tag())
	}
}
