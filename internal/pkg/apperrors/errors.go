package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate field value entered")

	// Authentication errors
	ErrUnauthenticated    = errors.New("not authorized to access this route")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrForbidden = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Auth flow errors
	ErrEmailDeliveryFailed = errors.New("email could not be sent")
	ErrInvalidResetToken   = errors.New("invalid or expired password reset token")

	// Upload errors
	ErrUploadRejected = errors.New("upload rejected")
)

// CustomError carries a user-facing message on top of a sentinel error so the
// central translator can pick the status code from the sentinel and the body
// from the message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewValidationError creates a validation error with an aggregated message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewDuplicateKeyError creates a duplicate-key error with a message.
func NewDuplicateKeyError(message string) error {
	return &CustomError{Err: ErrDuplicateKey, Message: message}
}

// NewUploadRejectedError creates an upload-rejected error with a message.
func NewUploadRejectedError(message string) error {
	return &CustomError{Err: ErrUploadRejected, Message: message}
}
