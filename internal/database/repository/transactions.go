package repository

import (
	"context"
	"database/sql"
)

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(id, kind, user_id, source, date, amount, comment, category_id, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		t.ID, t.Kind, t.UserID, t.Source, t.Date, t.Amount, t.Comment, t.CategoryID)
	return err
}

// ListByUser returns the user's transactions ordered by date descending.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kind, user_id, source, date, amount, comment, category_id, created_at
	FROM transactions
	WHERE user_id = ?
	ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, kind, user_id, source, date, amount, comment, category_id, created_at
	FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	return t, nil
}

// Delete removes the transaction, returning ErrNotFound if no row matched.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanTransaction handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var comment sql.NullString
	var category sql.NullInt64
	if err := row.Scan(&t.ID, &t.Kind, &t.UserID, &t.Source, &t.Date, &t.Amount,
		&comment, &category, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	if comment.Valid {
		t.Comment = &comment.String
	}
	if category.Valid {
		t.CategoryID = &category.Int64
	}
	return t, nil
}
