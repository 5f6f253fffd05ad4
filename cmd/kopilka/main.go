package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"kopilka/internal/config"
	"kopilka/internal/database"
	"kopilka/internal/database/repository"
	"kopilka/internal/logging"
	"kopilka/internal/service"
	"kopilka/internal/tui"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load() // optional, for local overrides

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Printf("warn: logging to /dev/null: %v", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	accounts := &service.Accounts{Users: repository.NewUserRepo(db)}
	ledger := &service.Ledger{
		Transactions: repository.NewTransactionRepo(db),
		Categories:   repository.NewCategoryRepo(db),
	}

	app := tui.New(ctx, cfg, accounts, ledger, logger)

	logger.Info("starting", "db", cfg.Database.Path)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("tui: %v", err)
	}
}
