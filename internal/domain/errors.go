package domain

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTableNotFound       = errors.New("table not found")
	ErrTableNumberTaken    = errors.New("table number already in use")
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoDraft             = errors.New("no reservation draft to confirm")
	ErrInvalidID           = errors.New("invalid id")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
