package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
)

type tenantsRepo struct {
	q dbtx
}

const tenantColumns = `id, name, slug, plan, created_at, updated_at`

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = ?`, slug)
	return scanTenant(row)
}

func (r *tenantsRepo) UpsertTenantBySlug(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	now := time.Now().UTC()
	// Plan deliberately not updated on conflict: upgrades only ever happen
	// through UpdateTenantPlan.
	row := r.q.QueryRowContext(ctx, `
		INSERT INTO tenants (id, name, slug, plan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			name       = excluded.name,
			updated_at = excluded.updated_at
		RETURNING `+tenantColumns,
		t.ID, t.Name, t.Slug, string(t.Plan), now, now)
	return scanTenant(row)
}

func (r *tenantsRepo) UpdateTenantPlan(ctx context.Context, tenantID string, plan domain.Plan) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tenants SET plan = ?, updated_at = ? WHERE id = ?`,
		string(plan), time.Now().UTC(), tenantID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	var plan string
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &plan, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	t.Plan = domain.Plan(plan)
	return t, nil
}
