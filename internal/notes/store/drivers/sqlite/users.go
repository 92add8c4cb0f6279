package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, email, password_hash, role, tenant_id, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) UpsertUserByEmail(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	row := r.q.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash, role, tenant_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = excluded.password_hash,
			role          = excluded.role,
			tenant_id     = excluded.tenant_id,
			updated_at    = excluded.updated_at
		RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.TenantID, now, now)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.TenantID,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}
