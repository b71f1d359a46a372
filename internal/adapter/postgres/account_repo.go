package postgres

import (
	"context"
	"database/sql"

	"noteful/internal/domain"
)

// GetByUsername retrieves an account by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, display_name, password_hash, created_at, updated_at FROM accounts WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.DisplayName, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an account by ID.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, display_name, password_hash, created_at, updated_at FROM accounts WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Username, &a.DisplayName, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create stores a new account.
func (d *DB) Create(ctx context.Context, account domain.Account) (*domain.Account, error) {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO accounts (id, username, display_name, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		account.ID, account.Username, account.DisplayName, account.PasswordHash, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CountByUsername returns the number of accounts with the given username.
func (d *DB) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE username = $1", username).Scan(&count)
	return count, err
}
