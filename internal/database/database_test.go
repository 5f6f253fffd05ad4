package database

import (
	"context"
	"os"
	"testing"

	"kopilka/internal/database/repository"
)

func testPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "kopilka-db-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestMigrationsCreateSchema(t *testing.T) {
	path := testPath(t)
	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	// running twice must be a no-op
	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations (second): %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"users", "categories", "transactions"} {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		if err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	path := testPath(t)
	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := SeedDefaults(ctx, db); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if err := SeedDefaults(ctx, db); err != nil {
		t.Fatalf("SeedDefaults (second): %v", err)
	}

	cats, err := repository.NewCategoryRepo(db).List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != len(defaultCategories) {
		t.Fatalf("got %d categories, want %d", len(cats), len(defaultCategories))
	}
	for i, c := range cats {
		if c.Name != defaultCategories[i] {
			t.Errorf("category[%d] = %q, want %q", i, c.Name, defaultCategories[i])
		}
		if c.ID != int64(i+1) {
			t.Errorf("category %q id = %d, want %d", c.Name, c.ID, i+1)
		}
	}
}
