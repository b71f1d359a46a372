package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"noteful/internal/domain"
)

// OwnershipValidator asserts that folder and tag references exist and belong
// to the requesting owner before any note mutation is committed.
type OwnershipValidator struct {
	folders domain.FolderRepository
	tags    domain.TagRepository
}

// NewOwnershipValidator creates a validator over the reference repositories.
func NewOwnershipValidator(folders domain.FolderRepository, tags domain.TagRepository) *OwnershipValidator {
	return &OwnershipValidator{folders: folders, tags: tags}
}

// ValidFolder checks that folderID, when set, references a folder owned by
// ownerID. A nil or empty reference is a no-op success.
func (v *OwnershipValidator) ValidFolder(ctx context.Context, folderID *string, ownerID string) error {
	if folderID == nil || *folderID == "" {
		return nil
	}
	if uuid.Validate(*folderID) != nil {
		// Malformed ids never reach the persistence layer.
		return wrapReason(ErrInvalidReference, msgInvalidFolder)
	}
	count, err := v.folders.CountOwned(ctx, []string{*folderID}, ownerID)
	if err != nil {
		return err
	}
	if count < 1 {
		return wrapReason(ErrInvalidReference, msgInvalidFolder)
	}
	return nil
}

// ValidTags checks that every id in tagIDs references a tag owned by
// ownerID. A nil slice is a no-op success. The owned count must equal the
// input length, which catches duplicates and foreign tags alike.
func (v *OwnershipValidator) ValidTags(ctx context.Context, tagIDs []string, ownerID string) error {
	if tagIDs == nil {
		return nil
	}
	for _, id := range tagIDs {
		if uuid.Validate(id) != nil {
			return wrapReason(ErrInvalidReference, msgInvalidTags)
		}
	}
	if len(tagIDs) == 0 {
		return nil
	}
	count, err := v.tags.CountOwned(ctx, tagIDs, ownerID)
	if err != nil {
		return err
	}
	if count != len(tagIDs) {
		return wrapReason(ErrInvalidReference, msgInvalidTags)
	}
	return nil
}

// ValidateNoteRefs runs the folder and tag checks concurrently. The first
// failure cancels the other check and aborts the mutation.
func (v *OwnershipValidator) ValidateNoteRefs(ctx context.Context, folderID *string, tagIDs []string, ownerID string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.ValidFolder(ctx, folderID, ownerID) })
	g.Go(func() error { return v.ValidTags(ctx, tagIDs, ownerID) })
	return g.Wait()
}
