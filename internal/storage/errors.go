package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrStatusMismatch = errors.New("status mismatch")
)

// StoreError is the only error type a backend returns. Op names the
// repository method ("sessions.create"); Err is the cause, which may be one of
// the sentinels above.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err and a *StoreError otherwise.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StoreError
	if errors.As(err, &existing) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
