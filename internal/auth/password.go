// Package auth provides password hashing and the password policy applied
// during registration and reset.
package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Policy violations, in the order they are checked. The first failing rule is
// the one reported to the user.
var (
	ErrTooShort    = errors.New("Password must be at least 6 characters")
	ErrNoUppercase = errors.New("Password must contain at least one uppercase letter")
	ErrNoDigit     = errors.New("Password must contain at least one number")
)

const minPasswordLength = 6

// ValidatePassword checks password against the policy and returns the first
// violated rule. Check order is significant.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrTooShort
	}
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return ErrNoUppercase
	}
	hasDigit := false
	for _, r := range password {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return ErrNoDigit
	}
	return nil
}

// Hash derives a bcrypt digest from the plaintext password.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches the stored digest.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
