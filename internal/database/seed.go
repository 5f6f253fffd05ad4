package database

import (
	"context"
	"database/sql"

	"kopilka/internal/database/repository"
)

// Default expense categories for new databases. Expense records reference
// categories by their 1-based position, so the seed order is load-bearing.
var defaultCategories = []string{
	"Groceries",
	"Transport",
	"Housing",
	"Entertainment",
	"Health",
	"Other",
}

// SeedDefaults ensures baseline expense categories exist. It is idempotent
// and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	existing, err := catRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i, name := range defaultCategories {
		if err := catRepo.Insert(ctx, name, i); err != nil {
			return err
		}
	}
	return nil
}
