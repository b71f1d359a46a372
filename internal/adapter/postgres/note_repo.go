package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"noteful/internal/domain"
)

const noteColumns = "n.id, n.owner_id, n.title, n.content, n.folder_id, n.created_at, n.updated_at, " +
	"COALESCE(array_agg(nt.tag_id::text ORDER BY nt.tag_id) FILTER (WHERE nt.tag_id IS NOT NULL), '{}')"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Find returns the notes matching the conjunctive filter, most recently
// updated first.
func (d *DB) Find(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	where := []string{"n.owner_id = $1"}
	args := []any{filter.OwnerID}

	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		where = append(where, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", len(args), len(args)))
	}
	if filter.FolderID != "" {
		args = append(args, filter.FolderID)
		where = append(where, fmt.Sprintf("n.folder_id = $%d", len(args)))
	}
	having := ""
	if filter.TagID != "" {
		args = append(args, filter.TagID)
		having = fmt.Sprintf(" HAVING bool_or(nt.tag_id = $%d)", len(args))
	}

	query := "SELECT " + noteColumns +
		" FROM notes n LEFT JOIN note_tags nt ON nt.note_id = n.id" +
		" WHERE " + strings.Join(where, " AND ") +
		" GROUP BY n.id" + having +
		" ORDER BY n.updated_at DESC"

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// FindOne retrieves a single owner-scoped note, or (nil, nil) when absent.
func (d *DB) FindOne(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	query := "SELECT " + noteColumns +
		" FROM notes n LEFT JOIN note_tags nt ON nt.note_id = n.id" +
		" WHERE n.id = $1 AND n.owner_id = $2 GROUP BY n.id"

	n, err := scanNote(d.sql.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Insert stores a new note and its tag references atomically.
func (d *DB) Insert(ctx context.Context, note domain.Note) (*domain.Note, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var folderID any
	if note.FolderID != nil {
		folderID = *note.FolderID
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO notes (id, owner_id, title, content, folder_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		note.ID, note.OwnerID, note.Title, note.Content, folderID, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := replaceNoteTags(ctx, tx, note.ID, note.TagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update applies a sparse patch to an owner-scoped note and returns the
// updated record, or (nil, nil) when no record matched.
func (d *DB) Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	set := []string{"updated_at = now()"}
	var args []any
	add := func(column string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.FolderID != nil {
		if *patch.FolderID == "" {
			set = append(set, "folder_id = NULL")
		} else {
			add("folder_id", *patch.FolderID)
		}
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE notes SET %s WHERE id = $%d AND owner_id = $%d",
		strings.Join(set, ", "), len(args)-1, len(args))

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	if patch.TagIDs != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = $1", id); err != nil {
			return nil, err
		}
		if err := replaceNoteTags(ctx, tx, id, *patch.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return d.FindOne(ctx, id, ownerID)
}

// Delete removes an owner-scoped note. Absent records are not an error.
func (d *DB) Delete(ctx context.Context, id, ownerID string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM notes WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}

// UnsetFolder clears the folder reference on all of an owner's notes filed
// under the given folder.
func (d *DB) UnsetFolder(ctx context.Context, folderID, ownerID string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE notes SET folder_id = NULL WHERE folder_id = $1 AND owner_id = $2",
		folderID, ownerID)
	return err
}

// PullTag removes the tag from all of an owner's notes.
func (d *DB) PullTag(ctx context.Context, tagID, ownerID string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM note_tags nt USING notes n WHERE nt.note_id = n.id AND nt.tag_id = $1 AND n.owner_id = $2",
		tagID, ownerID)
	return err
}

func replaceNoteTags(ctx context.Context, tx *sql.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO note_tags (note_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			noteID, tagID); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var (
		n      domain.Note
		folder sql.NullString
		tags   pq.StringArray
	)
	if err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &folder, &n.CreatedAt, &n.UpdatedAt, &tags); err != nil {
		return nil, err
	}
	if folder.Valid {
		f := folder.String
		n.FolderID = &f
	}
	n.TagIDs = []string(tags)
	if n.TagIDs == nil {
		n.TagIDs = []string{}
	}
	return &n, nil
}
