// Command seed populates a notes database with two tenants and their test
// accounts. It is meant for local development and demo environments, not
// production.
//
// Seeded accounts (all passwords are "password"):
//
//	admin@acme.test   ADMIN   acme (free)
//	user@acme.test    MEMBER  acme (free)
//	admin@globex.test ADMIN   globex (free)
//	user@globex.test  MEMBER  globex (free)
//
// Running it twice is safe: tenants and users are upserted by slug and email.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/app"
	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/aussiebroadwan/notetab/pkg/idx"
)

const seedPassword = "password"

func main() {
	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	ctx := context.Background()
	if err := seed(ctx, st); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	log.Printf("seeded database %s", cfg.DatabaseFile)
}

func seed(ctx context.Context, st store.Store) error {
	acme, err := seedTenant(ctx, st, "Acme", "acme")
	if err != nil {
		return err
	}
	globex, err := seedTenant(ctx, st, "Globex", "globex")
	if err != nil {
		return err
	}

	accounts := []struct {
		email    string
		role     domain.Role
		tenantID string
	}{
		{"admin@acme.test", domain.RoleAdmin, acme.ID},
		{"user@acme.test", domain.RoleMember, acme.ID},
		{"admin@globex.test", domain.RoleAdmin, globex.ID},
		{"user@globex.test", domain.RoleMember, globex.ID},
	}

	for _, a := range accounts {
		if err := seedUser(ctx, st, a.email, a.role, a.tenantID); err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}
		log.Printf("seeded user %s (%s)", a.email, a.role)
	}

	return nil
}

func seedTenant(ctx context.Context, st store.Store, name, slug string) (domain.Tenant, error) {
	now := time.Now().UTC()
	tenant, err := st.Tenants().UpsertTenantBySlug(ctx, domain.Tenant{
		ID:        idx.New().String(),
		Name:      name,
		Slug:      slug,
		Plan:      domain.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("seed tenant %s: %w", slug, err)
	}
	log.Printf("seeded tenant %s (%s plan)", tenant.Slug, tenant.Plan)
	return tenant, nil
}

func seedUser(ctx context.Context, st store.Store, email string, role domain.Role, tenantID string) error {
	hash, err := cryptox.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = st.Users().UpsertUserByEmail(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TenantID:     tenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return err
}
