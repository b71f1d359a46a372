package memory_test

import (
	"context"
	"testing"
	"time"

	"noteful/internal/adapter/memory"
	"noteful/internal/domain"
)

func seedNotes(t *testing.T, db *memory.DB, notes ...domain.Note) {
	t.Helper()
	for _, n := range notes {
		if _, err := db.Insert(context.Background(), n); err != nil {
			t.Fatalf("seed note %q: %v", n.ID, err)
		}
	}
}

func noteIDs(notes []domain.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func TestFind_Filters(t *testing.T) {
	db := memory.New()
	folder := "folder-1"
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedNotes(t, db,
		domain.Note{ID: "n1", OwnerID: "owner-1", Title: "The Foobar", Content: "plain", UpdatedAt: base},
		domain.Note{ID: "n2", OwnerID: "owner-1", Title: "Groceries", Content: "buy foo and eggs", FolderID: &folder, UpdatedAt: base.Add(time.Hour)},
		domain.Note{ID: "n3", OwnerID: "owner-1", Title: "Plans", Content: "nothing here", TagIDs: []string{"tag-1"}, UpdatedAt: base.Add(2 * time.Hour)},
		domain.Note{ID: "n4", OwnerID: "owner-2", Title: "foo elsewhere", Content: "other owner", UpdatedAt: base},
	)

	t.Run("owner scoping", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(notes) != 3 {
			t.Fatalf("expected 3 notes, got %d", len(notes))
		}
	})

	t.Run("ordered by most recent update", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got := noteIDs(notes)
		want := []string{"n3", "n2", "n1"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("case-insensitive search across title and content", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1", Search: "Foo"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 matches, got %v", noteIDs(notes))
		}
	})

	t.Run("folder filter", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1", FolderID: "folder-1"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "n2" {
			t.Fatalf("expected only n2, got %v", noteIDs(notes))
		}
	})

	t.Run("tag filter", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1", TagID: "tag-1"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "n3" {
			t.Fatalf("expected only n3, got %v", noteIDs(notes))
		}
	})

	t.Run("conjunctive filters", func(t *testing.T) {
		notes, err := db.Find(context.Background(), domain.NoteFilter{OwnerID: "owner-1", Search: "foo", FolderID: "folder-1"})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "n2" {
			t.Fatalf("expected only n2, got %v", noteIDs(notes))
		}
	})
}

func TestFindOne_OwnerScoped(t *testing.T) {
	db := memory.New()
	seedNotes(t, db, domain.Note{ID: "n1", OwnerID: "owner-1", Title: "mine"})

	note, err := db.FindOne(context.Background(), "n1", "owner-1")
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if note == nil || note.Title != "mine" {
		t.Fatalf("unexpected note %+v", note)
	}

	foreign, err := db.FindOne(context.Background(), "n1", "owner-2")
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if foreign != nil {
		t.Fatal("expected no result for a foreign owner")
	}
}

func TestUpdate_PatchSemantics(t *testing.T) {
	db := memory.New()
	folder := "folder-1"
	seedNotes(t, db, domain.Note{
		ID: "n1", OwnerID: "owner-1", Title: "before", Content: "body",
		FolderID: &folder, TagIDs: []string{"tag-1"},
	})

	title := "after"
	note, err := db.Update(context.Background(), "n1", "owner-1", domain.NotePatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if note.Title != "after" || note.Content != "body" {
		t.Fatalf("expected only the title to change, got %+v", note)
	}
	if note.FolderID == nil || *note.FolderID != "folder-1" {
		t.Fatal("untouched folder reference must survive a sparse patch")
	}

	empty := ""
	note, err = db.Update(context.Background(), "n1", "owner-1", domain.NotePatch{FolderID: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if note.FolderID != nil {
		t.Fatal("expected the folder reference to be unset")
	}

	tags := []string{"tag-2", "tag-3"}
	note, err = db.Update(context.Background(), "n1", "owner-1", domain.NotePatch{TagIDs: &tags})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(note.TagIDs) != 2 || note.TagIDs[0] != "tag-2" {
		t.Fatalf("expected replaced tag list, got %v", note.TagIDs)
	}

	absent, err := db.Update(context.Background(), "n1", "owner-2", domain.NotePatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if absent != nil {
		t.Fatal("expected no result for a foreign owner")
	}
}

func TestUnsetFolderAndPullTag(t *testing.T) {
	db := memory.New()
	folder := "folder-1"
	seedNotes(t, db,
		domain.Note{ID: "n1", OwnerID: "owner-1", Title: "filed", FolderID: &folder, TagIDs: []string{"tag-1", "tag-2"}},
		domain.Note{ID: "n2", OwnerID: "owner-2", Title: "foreign", FolderID: &folder, TagIDs: []string{"tag-1"}},
	)

	if err := db.UnsetFolder(context.Background(), "folder-1", "owner-1"); err != nil {
		t.Fatalf("unset folder: %v", err)
	}
	mine, _ := db.FindOne(context.Background(), "n1", "owner-1")
	if mine.FolderID != nil {
		t.Fatal("expected the owner's note to be unfiled")
	}
	foreign, _ := db.FindOne(context.Background(), "n2", "owner-2")
	if foreign.FolderID == nil {
		t.Fatal("a foreign owner's notes must be untouched")
	}

	if err := db.PullTag(context.Background(), "tag-1", "owner-1"); err != nil {
		t.Fatalf("pull tag: %v", err)
	}
	mine, _ = db.FindOne(context.Background(), "n1", "owner-1")
	if len(mine.TagIDs) != 1 || mine.TagIDs[0] != "tag-2" {
		t.Fatalf("expected only tag-2 to remain, got %v", mine.TagIDs)
	}
	foreign, _ = db.FindOne(context.Background(), "n2", "owner-2")
	if len(foreign.TagIDs) != 1 {
		t.Fatal("a foreign owner's tags must be untouched")
	}
}

func TestFolderRepo(t *testing.T) {
	db := memory.New()
	repo := db.NewFolderRepo()
	ctx := context.Background()

	for _, f := range []domain.Folder{
		{ID: "f1", OwnerID: "owner-1", Name: "Work"},
		{ID: "f2", OwnerID: "owner-1", Name: "Archive"},
		{ID: "f3", OwnerID: "owner-2", Name: "Work"},
	} {
		if _, err := repo.Insert(ctx, f); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	folders, err := repo.Find(ctx, "owner-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(folders) != 2 || folders[0].Name != "Archive" {
		t.Fatalf("expected name-ordered owner folders, got %+v", folders)
	}

	count, err := repo.CountOwned(ctx, []string{"f1", "f3"}, "owner-1")
	if err != nil {
		t.Fatalf("count owned: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 owned folder, got %d", count)
	}

	count, err = repo.CountNamed(ctx, "Work", "owner-1")
	if err != nil {
		t.Fatalf("count named: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 named folder, got %d", count)
	}

	renamed, err := repo.Rename(ctx, "f2", "owner-1", "Personal")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Personal" {
		t.Fatalf("unexpected folder %+v", renamed)
	}

	if err := repo.Delete(ctx, "f1", "owner-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := repo.FindOne(ctx, "f1", "owner-1"); got != nil {
		t.Fatal("expected f1 to be gone")
	}
}

func TestTagRepo(t *testing.T) {
	db := memory.New()
	repo := db.NewTagRepo()
	ctx := context.Background()

	for _, tag := range []domain.Tag{
		{ID: "t1", OwnerID: "owner-1", Name: "urgent"},
		{ID: "t2", OwnerID: "owner-2", Name: "urgent"},
	} {
		if _, err := repo.Insert(ctx, tag); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	count, err := repo.CountOwned(ctx, []string{"t1", "t2"}, "owner-1")
	if err != nil {
		t.Fatalf("count owned: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 owned tag, got %d", count)
	}

	if got, _ := repo.FindOne(ctx, "t2", "owner-1"); got != nil {
		t.Fatal("expected no result for a foreign tag")
	}
}
