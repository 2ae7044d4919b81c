package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrBanned          = errors.New("account is banned")
	ErrNotOwner        = errors.New("resource belongs to another user")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrBadCredential   = errors.New("invalid email or password")
	ErrSelfBan         = errors.New("admins cannot ban themselves")
	ErrStorage         = errors.New("file storage failed")
)

// ValidationError reports a rejected input field. Message is safe to show to the user.
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

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

func conflict(message string) error {
	return fmt.Errorf("%s: %w", message, ErrConflict)
}
