package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := VerifyPassword(hash, "correct-horse-battery"); err != nil {
		t.Errorf("VerifyPassword() with correct password error = %v", err)
	}

	if err := VerifyPassword(hash, "wrong-password-here"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("VerifyPassword() with wrong password error = %v, want ErrWrongPassword", err)
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("HashPassword() error = %v, want ErrPasswordTooShort", err)
	}
}

func TestVerifyPassword_NoHashSet(t *testing.T) {
	if err := VerifyPassword("", "anything-goes-here"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("VerifyPassword() with empty hash error = %v, want ErrWrongPassword", err)
	}
}
