package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("vehicle not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError marks caller mistakes: missing required fields, values
// outside an allow-list, numbers below their minimum. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StatusCode maps an error to the HTTP status the handlers respond with.
// Anything outside the taxonomy is an internal error.
func StatusCode(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
