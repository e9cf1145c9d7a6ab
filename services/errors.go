package services

import (
	"errors"
	"strings"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is the longest input bcrypt accepts, in bytes.
	MaxPasswordLength = 72
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrPasswordMismatch   = errors.New("old password is incorrect")
	ErrInvalidMatchDate   = errors.New("match date must be YYYY-MM-DD or RFC 3339")
	ErrInvalidMatchStatus = errors.New("match status must be Scheduled, Completed or Cancelled")

	ErrMatchNotFound  = errors.New("match not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrReviewNotFound = errors.New("video review not found")

	ErrMatchIDConflict  = errors.New("match id already in use")
	ErrReviewIDConflict = errors.New("video review id already in use")
	ErrEmailConflict    = errors.New("email address is already in use")
)

// ValidationError lists the required inputs that were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// required returns a *ValidationError naming every empty value, in the
// order given, or nil when all are present.
func required(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
