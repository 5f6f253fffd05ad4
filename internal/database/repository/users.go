package repository

import (
	"context"
	"database/sql"
)

// UserRepo handles users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// FindByName returns the user with the given username, or ErrNotFound.
func (r *UserRepo) FindByName(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, username, password_hash, secret_answer, created_at
	FROM users WHERE username = ?`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.SecretAnswer, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Insert creates a user and returns its store-assigned id.
func (r *UserRepo) Insert(ctx context.Context, username, passwordHash, secretAnswer string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO users(username, password_hash, secret_answer) VALUES(?, ?, ?)`,
		username, passwordHash, secretAnswer)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePassword replaces the stored password hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
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
