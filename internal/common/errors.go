// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Decision errors.
	ErrInvalidApplicant = errors.New("invalid applicant record")
	ErrInferenceFailed  = errors.New("model inference failed")
	ErrDailyQueryLimit  = errors.New("applicant already queried today")
	ErrNotPending       = errors.New("entry is not pending manager approval")

	// Configuration errors.
	ErrMissingConfig      = errors.New("missing configuration")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrThresholdOutOfBand = errors.New("risk threshold outside allowed range")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
