// Package service holds the operations the screen controller issues as
// asynchronous effects. Every method takes a context and returns user-facing
// errors for the failure modes the forms display.
package service

import (
	"context"
	"errors"
	"fmt"

	"kopilka/internal/auth"
	"kopilka/internal/database/repository"
)

// Authentication failure modes. These are deliberately distinguishable to the
// user, which leaks account existence; kept as the product demands it.
var (
	ErrUserNotFound    = errors.New("User not found")
	ErrInvalidPassword = errors.New("Invalid password")
	ErrWrongAnswer     = errors.New("Wrong answer to secret question")
)

// Accounts implements credential verification, registration and the
// secret-question password reset.
type Accounts struct {
	Users *repository.UserRepo
}

// Login verifies username/password and returns the user id.
func (s *Accounts) Login(ctx context.Context, username, password string) (int64, error) {
	u, err := s.Users.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("DB error: %v", err)
	}
	if !auth.Verify(password, u.PasswordHash) {
		return 0, ErrInvalidPassword
	}
	return u.ID, nil
}

// Register hashes the password and persists the new user. The password is
// assumed to have passed local policy validation already.
func (s *Accounts) Register(ctx context.Context, username, password, secretAnswer string) error {
	hash, err := auth.Hash(password)
	if err != nil {
		return fmt.Errorf("Password error: %v", err)
	}
	if _, err := s.Users.Insert(ctx, username, hash, secretAnswer); err != nil {
		return fmt.Errorf("Registration error: %v", err)
	}
	return nil
}

// ResetPassword sets a new password after an exact, case-sensitive match of
// the stored secret answer.
func (s *Accounts) ResetPassword(ctx context.Context, username, secretAnswer, newPassword string) error {
	u, err := s.Users.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("DB error: %v", err)
	}
	if u.SecretAnswer != secretAnswer {
		return ErrWrongAnswer
	}
	hash, err := auth.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("Password error: %v", err)
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("Update error: %v", err)
	}
	return nil
}
