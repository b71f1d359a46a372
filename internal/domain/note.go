package domain

import (
	"context"
	"time"
)

// Note is an owned resource, optionally filed under one folder and tagged
// with zero or more tags. OwnerID is immutable after creation.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folderId,omitempty"`
	TagIDs    []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteFilter describes a conjunctive listing filter. OwnerID is always set;
// the remaining fields are ANDed in when non-empty. Search matches
// case-insensitively as a substring against title or content.
type NoteFilter struct {
	OwnerID  string
	Search   string
	FolderID string
	TagID    string
}

// NotePatch is a sparse update. A nil field is left untouched. A FolderID
// pointing at the empty string unsets the folder reference.
type NotePatch struct {
	Title    *string
	Content  *string
	FolderID *string
	TagIDs   *[]string
}

// NoteRepository defines the port for note persistence operations. FindOne
// and Update report an absent owner-scoped record as (nil, nil).
type NoteRepository interface {
	Find(ctx context.Context, filter NoteFilter) ([]Note, error)
	FindOne(ctx context.Context, id, ownerID string) (*Note, error)
	Insert(ctx context.Context, note Note) (*Note, error)
	Update(ctx context.Context, id, ownerID string, patch NotePatch) (*Note, error)
	Delete(ctx context.Context, id, ownerID string) error
	UnsetFolder(ctx context.Context, folderID, ownerID string) error
	PullTag(ctx context.Context, tagID, ownerID string) error
}
