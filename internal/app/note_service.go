package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"noteful/internal/domain"
)

// NoteService is the facade for validated note CRUD. Every operation is
// scoped by the authenticated owner, making cross-account access
// structurally impossible.
type NoteService struct {
	notes domain.NoteRepository
	refs  *OwnershipValidator
}

// NewNoteService creates a NoteService over the note repository and the
// ownership validator.
func NewNoteService(notes domain.NoteRepository, refs *OwnershipValidator) *NoteService {
	return &NoteService{notes: notes, refs: refs}
}

// ListFilter carries the optional listing filters supplied by the caller.
type ListFilter struct {
	Search   string
	FolderID string
	TagID    string
}

// CreateNote carries the fields for a new note. An empty FolderID means the
// note is not filed under a folder.
type CreateNote struct {
	Title    string
	Content  string
	FolderID string
	TagIDs   []string
}

// List returns the owner's notes matching the conjunctive filter, most
// recently updated first. A malformed folder or tag filter is a definite
// non-match rather than an error.
func (s *NoteService) List(ctx context.Context, ownerID string, f ListFilter) ([]domain.Note, error) {
	if (f.FolderID != "" && uuid.Validate(f.FolderID) != nil) ||
		(f.TagID != "" && uuid.Validate(f.TagID) != nil) {
		return []domain.Note{}, nil
	}
	notes, err := s.notes.Find(ctx, domain.NoteFilter{
		OwnerID:  ownerID,
		Search:   f.Search,
		FolderID: f.FolderID,
		TagID:    f.TagID,
	})
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Get returns a single owner-scoped note. Malformed ids and missing records
// surface as the same not-found outcome to avoid existence leakage.
func (s *NoteService) Get(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	note, err := s.notes.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// Create validates the folder and tag references and persists a new note.
// The write is never attempted when either validation fails.
func (s *NoteService) Create(ctx context.Context, ownerID string, in CreateNote) (*domain.Note, error) {
	if in.Title == "" {
		return nil, &FieldError{Location: "title", Message: msgMissingTitle}
	}

	var folderID *string
	if in.FolderID != "" {
		folderID = &in.FolderID
	}
	if err := s.refs.ValidateNoteRefs(ctx, folderID, in.TagIDs, ownerID); err != nil {
		return nil, err
	}

	tagIDs := in.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	now := time.Now().UTC()
	return s.notes.Insert(ctx, domain.Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     in.Title,
		Content:   in.Content,
		FolderID:  folderID,
		TagIDs:    tagIDs,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update applies a sparse patch to an owner-scoped note. A folder id set to
// the empty string unsets the folder reference instead of leaving a dangling
// empty value.
func (s *NoteService) Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, &FieldError{Location: "title", Message: msgMissingTitle}
	}

	var folderID *string
	if patch.FolderID != nil && *patch.FolderID != "" {
		folderID = patch.FolderID
	}
	var tagIDs []string
	if patch.TagIDs != nil {
		tagIDs = *patch.TagIDs
	}
	if err := s.refs.ValidateNoteRefs(ctx, folderID, tagIDs, ownerID); err != nil {
		return nil, err
	}

	note, err := s.notes.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// Delete removes an owner-scoped note. Deleting an absent or malformed id is
// an idempotent success.
func (s *NoteService) Delete(ctx context.Context, id, ownerID string) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	return s.notes.Delete(ctx, id, ownerID)
}
