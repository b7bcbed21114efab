package services

import (
	"errors"
	"fmt"

	"github.com/focusmode/focusmode/internal/storage"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("access token required")
	ErrForbidden          = errors.New("invalid token")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError is an ErrValidation whose Message is safe to return to
// clients as is.
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

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// storeFailure maps store sentinels onto service kinds and keeps the
// *storage.StoreError reachable for logging.
func storeFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
