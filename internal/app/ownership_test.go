package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"noteful/internal/app"
	"noteful/internal/domain"
)

type mockFolderRepo struct {
	findFn       func(ctx context.Context, ownerID string) ([]domain.Folder, error)
	findOneFn    func(ctx context.Context, id, ownerID string) (*domain.Folder, error)
	insertFn     func(ctx context.Context, folder domain.Folder) (*domain.Folder, error)
	renameFn     func(ctx context.Context, id, ownerID, name string) (*domain.Folder, error)
	deleteFn     func(ctx context.Context, id, ownerID string) error
	countOwnedFn func(ctx context.Context, ids []string, ownerID string) (int, error)
	countNamedFn func(ctx context.Context, name, ownerID string) (int, error)
}

func (m *mockFolderRepo) Find(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	if m.findFn != nil {
		return m.findFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockFolderRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Folder, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, id, ownerID)
	}
	return nil, nil
}

func (m *mockFolderRepo) Insert(ctx context.Context, folder domain.Folder) (*domain.Folder, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, folder)
	}
	ret := folder
	return &ret, nil
}

func (m *mockFolderRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Folder, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, id, ownerID, name)
	}
	return nil, nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockFolderRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	if m.countOwnedFn != nil {
		return m.countOwnedFn(ctx, ids, ownerID)
	}
	return 0, nil
}

func (m *mockFolderRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	if m.countNamedFn != nil {
		return m.countNamedFn(ctx, name, ownerID)
	}
	return 0, nil
}

type mockTagRepo struct {
	findFn       func(ctx context.Context, ownerID string) ([]domain.Tag, error)
	findOneFn    func(ctx context.Context, id, ownerID string) (*domain.Tag, error)
	insertFn     func(ctx context.Context, tag domain.Tag) (*domain.Tag, error)
	renameFn     func(ctx context.Context, id, ownerID, name string) (*domain.Tag, error)
	deleteFn     func(ctx context.Context, id, ownerID string) error
	countOwnedFn func(ctx context.Context, ids []string, ownerID string) (int, error)
	countNamedFn func(ctx context.Context, name, ownerID string) (int, error)
}

func (m *mockTagRepo) Find(ctx context.Context, ownerID string) ([]domain.Tag, error) {
	if m.findFn != nil {
		return m.findFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTagRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Tag, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, id, ownerID)
	}
	return nil, nil
}

func (m *mockTagRepo) Insert(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, tag)
	}
	ret := tag
	return &ret, nil
}

func (m *mockTagRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Tag, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, id, ownerID, name)
	}
	return nil, nil
}

func (m *mockTagRepo) Delete(ctx context.Context, id, ownerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockTagRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	if m.countOwnedFn != nil {
		return m.countOwnedFn(ctx, ids, ownerID)
	}
	return 0, nil
}

func (m *mockTagRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	if m.countNamedFn != nil {
		return m.countNamedFn(ctx, name, ownerID)
	}
	return 0, nil
}

func TestValidFolder(t *testing.T) {
	ownedID := uuid.NewString()

	t.Run("nil reference passes", func(t *testing.T) {
		v := app.NewOwnershipValidator(&mockFolderRepo{}, &mockTagRepo{})
		if err := v.ValidFolder(context.Background(), nil, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty reference passes", func(t *testing.T) {
		v := app.NewOwnershipValidator(&mockFolderRepo{}, &mockTagRepo{})
		empty := ""
		if err := v.ValidFolder(context.Background(), &empty, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("malformed id fails without a lookup", func(t *testing.T) {
		queried := false
		folders := &mockFolderRepo{
			countOwnedFn: func(_ context.Context, _ []string, _ string) (int, error) {
				queried = true
				return 1, nil
			},
		}
		v := app.NewOwnershipValidator(folders, &mockTagRepo{})
		bad := "not-a-valid-id"
		err := v.ValidFolder(context.Background(), &bad, "owner-1")
		if !errors.Is(err, app.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
		if err.Error() != "The `folderId` is not valid" {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if queried {
			t.Fatal("malformed ids must not reach the repository")
		}
	})

	t.Run("foreign folder fails", func(t *testing.T) {
		folders := &mockFolderRepo{
			countOwnedFn: func(_ context.Context, _ []string, _ string) (int, error) { return 0, nil },
		}
		v := app.NewOwnershipValidator(folders, &mockTagRepo{})
		if err := v.ValidFolder(context.Background(), &ownedID, "owner-1"); !errors.Is(err, app.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("owned folder passes", func(t *testing.T) {
		folders := &mockFolderRepo{
			countOwnedFn: func(_ context.Context, ids []string, _ string) (int, error) { return len(ids), nil },
		}
		v := app.NewOwnershipValidator(folders, &mockTagRepo{})
		if err := v.ValidFolder(context.Background(), &ownedID, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestValidTags(t *testing.T) {
	t.Run("nil slice passes", func(t *testing.T) {
		v := app.NewOwnershipValidator(&mockFolderRepo{}, &mockTagRepo{})
		if err := v.ValidTags(context.Background(), nil, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty slice passes", func(t *testing.T) {
		v := app.NewOwnershipValidator(&mockFolderRepo{}, &mockTagRepo{})
		if err := v.ValidTags(context.Background(), []string{}, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("malformed id fails without a lookup", func(t *testing.T) {
		queried := false
		tags := &mockTagRepo{
			countOwnedFn: func(_ context.Context, _ []string, _ string) (int, error) {
				queried = true
				return 1, nil
			},
		}
		v := app.NewOwnershipValidator(&mockFolderRepo{}, tags)
		err := v.ValidTags(context.Background(), []string{"not-a-valid-id"}, "owner-1")
		if !errors.Is(err, app.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
		if err.Error() != "Your `tags` are not valid" {
			t.Fatalf("unexpected message %q", err.Error())
		}
		if queried {
			t.Fatal("malformed ids must not reach the repository")
		}
	})

	t.Run("count mismatch fails", func(t *testing.T) {
		tags := &mockTagRepo{
			countOwnedFn: func(_ context.Context, _ []string, _ string) (int, error) { return 1, nil },
		}
		v := app.NewOwnershipValidator(&mockFolderRepo{}, tags)
		ids := []string{uuid.NewString(), uuid.NewString()}
		if err := v.ValidTags(context.Background(), ids, "owner-1"); !errors.Is(err, app.ErrInvalidReference) {
			t.Fatalf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("all owned passes", func(t *testing.T) {
		tags := &mockTagRepo{
			countOwnedFn: func(_ context.Context, ids []string, _ string) (int, error) { return len(ids), nil },
		}
		v := app.NewOwnershipValidator(&mockFolderRepo{}, tags)
		ids := []string{uuid.NewString(), uuid.NewString()}
		if err := v.ValidTags(context.Background(), ids, "owner-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestValidateNoteRefs(t *testing.T) {
	folders := &mockFolderRepo{
		countOwnedFn: func(_ context.Context, ids []string, _ string) (int, error) { return len(ids), nil },
	}
	tags := &mockTagRepo{
		countOwnedFn: func(_ context.Context, _ []string, _ string) (int, error) { return 0, nil },
	}
	v := app.NewOwnershipValidator(folders, tags)

	folderID := uuid.NewString()
	err := v.ValidateNoteRefs(context.Background(), &folderID, []string{uuid.NewString()}, "owner-1")
	if !errors.Is(err, app.ErrInvalidReference) {
		t.Fatalf("expected tag failure to propagate, got %v", err)
	}

	tags.countOwnedFn = func(_ context.Context, ids []string, _ string) (int, error) { return len(ids), nil }
	if err := v.ValidateNoteRefs(context.Background(), &folderID, []string{uuid.NewString()}, "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
