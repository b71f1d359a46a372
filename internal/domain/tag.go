package domain

import (
	"context"
	"time"
)

// Tag is an owned reference entity notes can carry any number of.
type Tag struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagRepository defines the port for tag persistence operations.
type TagRepository interface {
	Find(ctx context.Context, ownerID string) ([]Tag, error)
	FindOne(ctx context.Context, id, ownerID string) (*Tag, error)
	Insert(ctx context.Context, tag Tag) (*Tag, error)
	Rename(ctx context.Context, id, ownerID, name string) (*Tag, error)
	Delete(ctx context.Context, id, ownerID string) error
	CountOwned(ctx context.Context, ids []string, ownerID string) (int, error)
	CountNamed(ctx context.Context, name, ownerID string) (int, error)
}
