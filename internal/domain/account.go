// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account is an owning identity in the system. The password hash is opaque
// and never serialized outward.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AccountRepository defines the port for account persistence operations.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account Account) (*Account, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}
