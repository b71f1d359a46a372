package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"noteful/internal/domain"
)

// TagRepo implements tag repository operations on DB.
type TagRepo struct {
	db *DB
}

// NewTagRepo wraps a DB as a TagRepository.
func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// Find returns the owner's tags ordered by name.
func (r *TagRepo) Find(ctx context.Context, ownerID string) ([]domain.Tag, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, owner_id, name, created_at, updated_at FROM tags WHERE owner_id = $1 ORDER BY name",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// FindOne retrieves a single owner-scoped tag, or (nil, nil) when absent.
func (r *TagRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, owner_id, name, created_at, updated_at FROM tags WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Insert stores a new tag.
func (r *TagRepo) Insert(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO tags (id, owner_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		tag.ID, tag.OwnerID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Rename updates an owner-scoped tag's name, or returns (nil, nil) when no
// record matched.
func (r *TagRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.sql.QueryRowContext(ctx,
		"UPDATE tags SET name = $1, updated_at = now() WHERE id = $2 AND owner_id = $3 RETURNING id, owner_id, name, created_at, updated_at",
		name, id, ownerID,
	).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes an owner-scoped tag. Absent records are not an error.
func (r *TagRepo) Delete(ctx context.Context, id, ownerID string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM tags WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}

// CountOwned returns how many of the given tag ids belong to ownerID.
// Duplicate input ids are counted once, which callers rely on to detect
// duplicates-as-distinct.
func (r *TagRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tags WHERE id = ANY($1::uuid[]) AND owner_id = $2",
		pq.Array(ids), ownerID,
	).Scan(&count)
	return count, err
}

// CountNamed returns how many of the owner's tags carry the given name.
func (r *TagRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tags WHERE name = $1 AND owner_id = $2",
		name, ownerID,
	).Scan(&count)
	return count, err
}
