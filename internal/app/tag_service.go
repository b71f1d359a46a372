package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"noteful/internal/domain"
)

// TagService handles CRUD for the tag reference entities.
type TagService struct {
	tags  domain.TagRepository
	notes domain.NoteRepository
}

// NewTagService creates a TagService over the tag and note repositories.
func NewTagService(tags domain.TagRepository, notes domain.NoteRepository) *TagService {
	return &TagService{tags: tags, notes: notes}
}

// List returns the owner's tags.
func (s *TagService) List(ctx context.Context, ownerID string) ([]domain.Tag, error) {
	tags, err := s.tags.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// Get returns a single owner-scoped tag or ErrNotFound.
func (s *TagService) Get(ctx context.Context, id, ownerID string) (*domain.Tag, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	tag, err := s.tags.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Create stores a new tag. Names are required and unique per owner.
func (s *TagService) Create(ctx context.Context, ownerID, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, MissingField("name")
	}
	count, err := s.tags.CountNamed(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, wrapReason(ErrNameTaken, "Tag name already exists")
	}

	now := time.Now().UTC()
	return s.tags.Insert(ctx, domain.Tag{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Rename changes a tag's name, keeping per-owner uniqueness.
func (s *TagService) Rename(ctx context.Context, id, ownerID, name string) (*domain.Tag, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, MissingField("name")
	}
	count, err := s.tags.CountNamed(ctx, name, ownerID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, wrapReason(ErrNameTaken, "Tag name already exists")
	}

	tag, err := s.tags.Rename(ctx, id, ownerID, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

// Delete removes a tag and pulls it from the owner's notes. Deleting an
// absent tag is an idempotent success.
func (s *TagService) Delete(ctx context.Context, id, ownerID string) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	if err := s.tags.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	return s.notes.PullTag(ctx, id, ownerID)
}
