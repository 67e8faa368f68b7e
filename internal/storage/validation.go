package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bankflowhq/bankflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidEntry = errors.New("invalid history entry")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateHistoryEntry checks an entry before it is appended.
func validateHistoryEntry(entry *model.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}

	switch {
	case entry.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	case entry.IDHash == "":
		return fmt.Errorf("%w: missing applicant hash", ErrInvalidEntry)
	case entry.Decision == "":
		return fmt.Errorf("%w: missing decision", ErrInvalidEntry)
	case entry.Status != model.StatusCompleted && entry.Status != model.StatusPendingManager:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, entry.Status)
	case entry.Officer == "":
		return fmt.Errorf("%w: missing officer", ErrInvalidEntry)
	}

	return nil
}
