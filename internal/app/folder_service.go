package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"noteful/internal/domain"
)

// FolderService handles CRUD for the folder reference entities.
type FolderService struct {
	folders domain.FolderRepository
	notes   domain.NoteRepository
}

// NewFolderService creates a FolderService over the folder and note
// repositories.
func NewFolderService(folders domain.FolderRepository, notes domain.NoteRepository) *FolderService {
	return &FolderService{folders: folders, notes: notes}
}

// List returns the owner's folders.
func (s *FolderService) List(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	folders, err := s.folders.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	return folders, nil
}

// Get returns a single owner-scoped folder or ErrNotFound.
func (s *FolderService) Get(ctx context.Context, id, ownerID string) (*domain.Folder, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	folder, err := s.folders.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrNotFound
	}
	return folder, nil
}

// Create stores a new folder. Names are required and unique per owner.
func (s *FolderService) Create(ctx context.Context, ownerID, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, MissingField("name")
	}
	count, err := s.folders.CountNamed(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, wrapReason(ErrNameTaken, "Folder name already exists")
	}

	now := time.Now().UTC()
	return s.folders.Insert(ctx, domain.Folder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Rename changes a folder's name, keeping per-owner uniqueness.
func (s *FolderService) Rename(ctx context.Context, id, ownerID, name string) (*domain.Folder, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, MissingField("name")
	}
	count, err := s.folders.CountNamed(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, wrapReason(ErrNameTaken, "Folder name already exists")
	}

	folder, err := s.folders.Rename(ctx, id, ownerID, name)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrNotFound
	}
	return folder, nil
}

// Delete removes a folder and unsets the reference on the owner's notes.
// Notes are unfiled first so the folder row is unreferenced when it goes.
// Deleting an absent folder is an idempotent success.
func (s *FolderService) Delete(ctx context.Context, id, ownerID string) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	if err := s.notes.UnsetFolder(ctx, id, ownerID); err != nil {
		return err
	}
	return s.folders.Delete(ctx, id, ownerID)
}
