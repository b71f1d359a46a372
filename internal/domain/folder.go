package domain

import (
	"context"
	"time"
)

// Folder is an owned reference entity notes can be filed under.
type Folder struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FolderRepository defines the port for folder persistence operations.
type FolderRepository interface {
	Find(ctx context.Context, ownerID string) ([]Folder, error)
	FindOne(ctx context.Context, id, ownerID string) (*Folder, error)
	Insert(ctx context.Context, folder Folder) (*Folder, error)
	Rename(ctx context.Context, id, ownerID, name string) (*Folder, error)
	Delete(ctx context.Context, id, ownerID string) error
	CountOwned(ctx context.Context, ids []string, ownerID string) (int, error)
	CountNamed(ctx context.Context, name, ownerID string) (int, error)
}
