// Package auth handles staff credential hashing and verification.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password the bank accepts.
const MinPasswordLength = 8

// ErrPasswordTooShort is returned for passwords under the minimum length.
var ErrPasswordTooShort = errors.New("password too short")

// ErrWrongPassword is returned when verification fails.
var ErrWrongPassword = errors.New("wrong password")

// HashPassword produces a bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword checks a candidate password against a stored hash.
func VerifyPassword(hash, password string) error {
	if hash == "" {
		return fmt.Errorf("%w: no password set for account", ErrWrongPassword)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	return nil
}
