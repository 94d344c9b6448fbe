package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound signals an unknown user id.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrTrackNotFound signals an unknown track id.
	ErrTrackNotFound = fmt.Errorf("track %w", ErrNotFound)
	// ErrInvalidArgument signals malformed or missing input, rejected before any query.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSelfFriendship signals a friendship edge from a user to itself.
	ErrSelfFriendship = fmt.Errorf("%w: user cannot befriend itself", ErrInvalidArgument)
	// ErrIndexUnavailable signals that the catalog sample index is not configured.
	ErrIndexUnavailable = errors.New("catalog index unavailable")
)

// InvalidArgumentError wraps ErrInvalidArgument with the offending field.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument.Error(), e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument creates an invalid argument error for a field.
func NewInvalidArgument(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// ValidateUserID rejects non-positive user identifiers.
func ValidateUserID(field string, id int64) error {
	if id <= 0 {
		return NewInvalidArgument(field, "must be a positive integer")
	}
	return nil
}

// ValidateTrackID rejects empty track identifiers.
func ValidateTrackID(field, id string) error {
	if id == "" {
		return NewInvalidArgument(field, "is required")
	}
	return nil
}
