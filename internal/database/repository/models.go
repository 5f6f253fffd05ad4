package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Transaction kinds. The amount column stores a non-negative magnitude; the
// sign is implied by the kind and never stored.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// User represents a users row.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	SecretAnswer string
	CreatedAt    time.Time
}

// Category represents a category row.
type Category struct {
	ID        int64
	Name      string
	SortOrder int
}

// Transaction represents a transaction row. CategoryID is set only for
// expense records.
type Transaction struct {
	ID         string
	Kind       string
	UserID     int64
	Source     string
	Date       time.Time
	Amount     float64
	Comment    *string
	CategoryID *int64
	CreatedAt  time.Time
}
