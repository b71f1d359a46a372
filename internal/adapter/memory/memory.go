// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"noteful/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	accounts []domain.Account
	notes    []domain.Note
	folders  []domain.Folder
	tags     []domain.Tag
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.NoteRepository = (*DB)(nil)
var _ domain.FolderRepository = (*FolderRepo)(nil)
var _ domain.TagRepository = (*TagRepo)(nil)

// --- AccountRepository ---

// GetByUsername retrieves an account by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			ret := a
			return &ret, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an account by ID.
func (db *DB) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			ret := a
			return &ret, nil
		}
	}
	return nil, nil
}

// Create stores a new account.
func (db *DB) Create(ctx context.Context, account domain.Account) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.accounts = append(db.accounts, account)
	ret := account
	return &ret, nil
}

// CountByUsername returns the number of accounts with the given username.
func (db *DB) CountByUsername(ctx context.Context, username string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, a := range db.accounts {
		if a.Username == username {
			count++
		}
	}
	return count, nil
}

// --- NoteRepository ---

// Find returns the notes matching the conjunctive filter, most recently
// updated first.
func (db *DB) Find(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var result []domain.Note
	for _, n := range db.notes {
		if n.OwnerID != filter.OwnerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Content), search) {
			continue
		}
		if filter.FolderID != "" && (n.FolderID == nil || *n.FolderID != filter.FolderID) {
			continue
		}
		if filter.TagID != "" && !contains(n.TagIDs, filter.TagID) {
			continue
		}
		result = append(result, copyNote(n))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// FindOne retrieves a single owner-scoped note, or (nil, nil) when absent.
func (db *DB) FindOne(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, n := range db.notes {
		if n.ID == id && n.OwnerID == ownerID {
			ret := copyNote(n)
			return &ret, nil
		}
	}
	return nil, nil
}

// Insert stores a new note.
func (db *DB) Insert(ctx context.Context, note domain.Note) (*domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if note.TagIDs == nil {
		note.TagIDs = []string{}
	}
	db.notes = append(db.notes, copyNote(note))
	ret := copyNote(note)
	return &ret, nil
}

// Update applies a sparse patch to an owner-scoped note, or returns
// (nil, nil) when no record matched.
func (db *DB) Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.notes {
		n := &db.notes[i]
		if n.ID != id || n.OwnerID != ownerID {
			continue
		}
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.FolderID != nil {
			if *patch.FolderID == "" {
				n.FolderID = nil
			} else {
				f := *patch.FolderID
				n.FolderID = &f
			}
		}
		if patch.TagIDs != nil {
			n.TagIDs = append([]string{}, *patch.TagIDs...)
		}
		n.UpdatedAt = time.Now().UTC()
		ret := copyNote(*n)
		return &ret, nil
	}
	return nil, nil
}

// Delete removes an owner-scoped note. Absent records are not an error.
func (db *DB) Delete(ctx context.Context, id, ownerID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, n := range db.notes {
		if n.ID == id && n.OwnerID == ownerID {
			db.notes = append(db.notes[:i], db.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

// UnsetFolder clears the folder reference on all of an owner's notes filed
// under the given folder.
func (db *DB) UnsetFolder(ctx context.Context, folderID, ownerID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.notes {
		n := &db.notes[i]
		if n.OwnerID == ownerID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
		}
	}
	return nil
}

// PullTag removes the tag from all of an owner's notes.
func (db *DB) PullTag(ctx context.Context, tagID, ownerID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.notes {
		n := &db.notes[i]
		if n.OwnerID != ownerID {
			continue
		}
		kept := n.TagIDs[:0]
		for _, id := range n.TagIDs {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		n.TagIDs = kept
	}
	return nil
}

// --- FolderRepository ---

// FolderRepo implements folder persistence on DB.
type FolderRepo struct {
	db *DB
}

// NewFolderRepo wraps a DB as a FolderRepository.
func (db *DB) NewFolderRepo() *FolderRepo {
	return &FolderRepo{db: db}
}

// Find returns the owner's folders ordered by name.
func (r *FolderRepo) Find(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var result []domain.Folder
	for _, f := range r.db.folders {
		if f.OwnerID == ownerID {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// FindOne retrieves a single owner-scoped folder, or (nil, nil) when absent.
func (r *FolderRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, f := range r.db.folders {
		if f.ID == id && f.OwnerID == ownerID {
			ret := f
			return &ret, nil
		}
	}
	return nil, nil
}

// Insert stores a new folder.
func (r *FolderRepo) Insert(ctx context.Context, folder domain.Folder) (*domain.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.folders = append(r.db.folders, folder)
	ret := folder
	return &ret, nil
}

// Rename updates an owner-scoped folder's name, or returns (nil, nil) when
// no record matched.
func (r *FolderRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.folders {
		f := &r.db.folders[i]
		if f.ID == id && f.OwnerID == ownerID {
			f.Name = name
			f.UpdatedAt = time.Now().UTC()
			ret := *f
			return &ret, nil
		}
	}
	return nil, nil
}

// Delete removes an owner-scoped folder. Absent records are not an error.
func (r *FolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, f := range r.db.folders {
		if f.ID == id && f.OwnerID == ownerID {
			r.db.folders = append(r.db.folders[:i], r.db.folders[i+1:]...)
			return nil
		}
	}
	return nil
}

// CountOwned returns how many of the given folder ids belong to ownerID.
func (r *FolderRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	count := 0
	for _, f := range r.db.folders {
		if f.OwnerID == ownerID && contains(ids, f.ID) {
			count++
		}
	}
	return count, nil
}

// CountNamed returns how many of the owner's folders carry the given name.
func (r *FolderRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	count := 0
	for _, f := range r.db.folders {
		if f.OwnerID == ownerID && f.Name == name {
			count++
		}
	}
	return count, nil
}

// --- TagRepository ---

// TagRepo implements tag persistence on DB.
type TagRepo struct {
	db *DB
}

// NewTagRepo wraps a DB as a TagRepository.
func (db *DB) NewTagRepo() *TagRepo {
	return &TagRepo{db: db}
}

// Find returns the owner's tags ordered by name.
func (r *TagRepo) Find(ctx context.Context, ownerID string) ([]domain.Tag, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var result []domain.Tag
	for _, t := range r.db.tags {
		if t.OwnerID == ownerID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// FindOne retrieves a single owner-scoped tag, or (nil, nil) when absent.
func (r *TagRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Tag, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, t := range r.db.tags {
		if t.ID == id && t.OwnerID == ownerID {
			ret := t
			return &ret, nil
		}
	}
	return nil, nil
}

// Insert stores a new tag.
func (r *TagRepo) Insert(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.tags = append(r.db.tags, tag)
	ret := tag
	return &ret, nil
}

// Rename updates an owner-scoped tag's name, or returns (nil, nil) when no
// record matched.
func (r *TagRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Tag, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.tags {
		t := &r.db.tags[i]
		if t.ID == id && t.OwnerID == ownerID {
			t.Name = name
			t.UpdatedAt = time.Now().UTC()
			ret := *t
			return &ret, nil
		}
	}
	return nil, nil
}

// Delete removes an owner-scoped tag. Absent records are not an error.
func (r *TagRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, t := range r.db.tags {
		if t.ID == id && t.OwnerID == ownerID {
			r.db.tags = append(r.db.tags[:i], r.db.tags[i+1:]...)
			return nil
		}
	}
	return nil
}

// CountOwned returns how many of the given tag ids belong to ownerID.
func (r *TagRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	count := 0
	for _, t := range r.db.tags {
		if t.OwnerID == ownerID && contains(ids, t.ID) {
			count++
		}
	}
	return count, nil
}

// CountNamed returns how many of the owner's tags carry the given name.
func (r *TagRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	count := 0
	for _, t := range r.db.tags {
		if t.OwnerID == ownerID && t.Name == name {
			count++
		}
	}
	return count, nil
}

func copyNote(n domain.Note) domain.Note {
	ret := n
	if n.FolderID != nil {
		f := *n.FolderID
		ret.FolderID = &f
	}
	ret.TagIDs = append([]string{}, n.TagIDs...)
	return ret
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
