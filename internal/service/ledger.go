package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"kopilka/internal/database/repository"
)

// Snapshot is the combined load delivered after login and after a delete:
// the user's transactions plus the category list, fetched concurrently and
// joined into one result.
type Snapshot struct {
	Transactions []repository.Transaction
	Categories   []repository.Category
}

// Ledger implements transaction bookkeeping on top of the stores.
type Ledger struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
}

// AddExpense records an expense with an optional category.
func (l *Ledger) AddExpense(ctx context.Context, userID int64, store string, date time.Time, amount float64, categoryID *int64) error {
	return l.Transactions.Insert(ctx, repository.Transaction{
		ID:         uuid.NewString(),
		Kind:       repository.KindExpense,
		UserID:     userID,
		Source:     store,
		Date:       date,
		Amount:     amount,
		CategoryID: categoryID,
	})
}

// AddIncome records an income entry. Income never carries a category.
func (l *Ledger) AddIncome(ctx context.Context, userID int64, source string, date time.Time, amount float64) error {
	return l.Transactions.Insert(ctx, repository.Transaction{
		ID:     uuid.NewString(),
		Kind:   repository.KindIncome,
		UserID: userID,
		Source: source,
		Date:   date,
		Amount: amount,
	})
}

// Delete removes a transaction by id.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	return l.Transactions.Delete(ctx, id)
}

// ListTransactions returns the user's transactions in store order.
func (l *Ledger) ListTransactions(ctx context.Context, userID int64) ([]repository.Transaction, error) {
	return l.Transactions.ListByUser(ctx, userID)
}

// Snapshot fetches transactions and categories concurrently.
func (l *Ledger) Snapshot(ctx context.Context, userID int64) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := l.Transactions.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		cats, err := l.Categories.List(ctx)
		if err != nil {
			return err
		}
		snap.Categories = cats
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
