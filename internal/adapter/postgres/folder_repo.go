package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"noteful/internal/domain"
)

// FolderRepo implements folder repository operations on DB.
type FolderRepo struct {
	db *DB
}

// NewFolderRepo wraps a DB as a FolderRepository.
func NewFolderRepo(db *DB) *FolderRepo {
	return &FolderRepo{db: db}
}

// Find returns the owner's folders ordered by name.
func (r *FolderRepo) Find(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, owner_id, name, created_at, updated_at FROM folders WHERE owner_id = $1 ORDER BY name",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// FindOne retrieves a single owner-scoped folder, or (nil, nil) when absent.
func (r *FolderRepo) FindOne(ctx context.Context, id, ownerID string) (*domain.Folder, error) {
	var f domain.Folder
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, owner_id, name, created_at, updated_at FROM folders WHERE id = $1 AND owner_id = $2",
		id, ownerID,
	).Scan(&f.ID, &f.OwnerID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Insert stores a new folder.
func (r *FolderRepo) Insert(ctx context.Context, folder domain.Folder) (*domain.Folder, error) {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO folders (id, owner_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		folder.ID, folder.OwnerID, folder.Name, folder.CreatedAt, folder.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// Rename updates an owner-scoped folder's name, or returns (nil, nil) when
// no record matched.
func (r *FolderRepo) Rename(ctx context.Context, id, ownerID, name string) (*domain.Folder, error) {
	var f domain.Folder
	err := r.db.sql.QueryRowContext(ctx,
		"UPDATE folders SET name = $1, updated_at = now() WHERE id = $2 AND owner_id = $3 RETURNING id, owner_id, name, created_at, updated_at",
		name, id, ownerID,
	).Scan(&f.ID, &f.OwnerID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes an owner-scoped folder. Absent records are not an error.
func (r *FolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM folders WHERE id = $1 AND owner_id = $2", id, ownerID)
	return err
}

// CountOwned returns how many of the given folder ids belong to ownerID.
func (r *FolderRepo) CountOwned(ctx context.Context, ids []string, ownerID string) (int, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM folders WHERE id = ANY($1::uuid[]) AND owner_id = $2",
		pq.Array(ids), ownerID,
	).Scan(&count)
	return count, err
}

// CountNamed returns how many of the owner's folders carry the given name.
func (r *FolderRepo) CountNamed(ctx context.Context, name, ownerID string) (int, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM folders WHERE name = $1 AND owner_id = $2",
		name, ownerID,
	).Scan(&count)
	return count, err
}
