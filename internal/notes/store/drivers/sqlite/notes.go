package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
)

type notesRepo struct {
	q dbtx
}

const noteColumns = `id, title, content, tenant_id, user_id, created_at, updated_at`

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, tenant_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, n.TenantID, n.UserID, n.CreatedAt, n.UpdatedAt)
	return err
}

// GetNote matches by id AND tenant. A note that exists under another tenant
// scans as sql.ErrNoRows, which maps to store.ErrNotFound: cross-tenant ids
// are indistinguishable from missing ones by design.
func (r *notesRepo) GetNote(ctx context.Context, id, tenantID string) (domain.Note, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND tenant_id = ?`,
		id, tenantID)
	return scanNote(row)
}

func (r *notesRepo) ListNotesByTenant(ctx context.Context, tenantID string) ([]domain.Note, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE tenant_id = ? ORDER BY created_at DESC, id DESC`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notesRepo) UpdateNote(ctx context.Context, id, tenantID, title, content string) (domain.Note, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
		RETURNING `+noteColumns,
		title, content, time.Now().UTC(), id, tenantID)
	return scanNote(row)
}

func (r *notesRepo) DeleteNote(ctx context.Context, id, tenantID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *notesRepo) CountNotesByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE tenant_id = ?`, tenantID).Scan(&count)
	return count, err
}

func scanNote(row rowScanner) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.TenantID, &n.UserID,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return n, nil
}
