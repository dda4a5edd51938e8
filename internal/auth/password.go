package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// ErrInvalidPassword is returned when PASS does not match the server password.
var ErrInvalidPassword = errors.New("invalid password")

// HashPassword generates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares a bcrypt hashed password with its plaintext version.
func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CheckServerPassword verifies a PASS value. An empty hash disables the check.
func CheckServerPassword(hash, password string) error {
	if hash == "" {
		return nil
	}
	if err := ComparePassword(hash, password); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
