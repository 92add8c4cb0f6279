package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/aussiebroadwan/notetab/pkg/idx"
	"github.com/aussiebroadwan/notetab/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedTenant(t *testing.T, st store.Store, slug string, plan domain.Plan) domain.Tenant {
	t.Helper()

	now := time.Now().UTC()
	tenant, err := st.Tenants().UpsertTenantBySlug(context.Background(), domain.Tenant{
		ID:        idx.New().String(),
		Name:      slug,
		Slug:      slug,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return tenant
}

func seedUser(t *testing.T, st store.Store, email string, role domain.Role, tenantID string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword("password")
	require.NoError(t, err)

	now := time.Now().UTC()
	user, err := st.Users().UpsertUserByEmail(context.Background(), domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TenantID:     tenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

func TestMain(m *testing.M) {
	// Password hashing needs a pepper file; point it at a scratch location
	// so tests never touch a real one.
	dir, err := os.MkdirTemp("", "notetab-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, ".pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestNoteServiceQuota(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &NoteService{Store: st}

	tenant := seedTenant(t, st, "acme", domain.PlanFree)
	user := seedUser(t, st, "owner@acme.test", domain.RoleAdmin, tenant.ID)

	t.Run("free tenant capped at limit", func(t *testing.T) {
		for i := 0; i < FreeNoteLimit; i++ {
			_, err := svc.CreateNote(ctx, tenant.ID, user.ID, "title", "content")
			require.NoError(t, err)
		}

		_, err := svc.CreateNote(ctx, tenant.ID, user.ID, "one too many", "content")
		require.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("upgrade lifts the cap immediately", func(t *testing.T) {
		tenants := &TenantService{Store: st}
		res, err := tenants.Upgrade(ctx, tenant.ID, tenant.Slug)
		require.NoError(t, err)
		require.Equal(t, domain.PlanPro, res.Tenant.Plan)
		require.False(t, res.AlreadyUpgraded)

		note, err := svc.CreateNote(ctx, tenant.ID, user.ID, "fourth", "content")
		require.NoError(t, err)
		require.NotEmpty(t, note.ID)
	})

	t.Run("deleting frees a free-plan slot", func(t *testing.T) {
		st := newTestStore(t)
		svc := &NoteService{Store: st}
		tenant := seedTenant(t, st, "smallco", domain.PlanFree)
		user := seedUser(t, st, "a@smallco.test", domain.RoleMember, tenant.ID)

		var last domain.Note
		for i := 0; i < FreeNoteLimit; i++ {
			var err error
			last, err = svc.CreateNote(ctx, tenant.ID, user.ID, "t", "c")
			require.NoError(t, err)
		}

		_, err := svc.CreateNote(ctx, tenant.ID, user.ID, "t", "c")
		require.ErrorIs(t, err, ErrQuotaExceeded)

		require.NoError(t, svc.DeleteNote(ctx, tenant.ID, last.ID))

		_, err = svc.CreateNote(ctx, tenant.ID, user.ID, "t", "c")
		require.NoError(t, err)
	})
}

func TestNoteServiceValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &NoteService{Store: st}

	tenant := seedTenant(t, st, "acme", domain.PlanPro)
	user := seedUser(t, st, "owner@acme.test", domain.RoleAdmin, tenant.ID)

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, tenant.ID, user.ID, "   ", "content")
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, tenant.ID, user.ID, "title", "")
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("update requires both fields", func(t *testing.T) {
		note, err := svc.CreateNote(ctx, tenant.ID, user.ID, "title", "content")
		require.NoError(t, err)

		_, err = svc.UpdateNote(ctx, tenant.ID, note.ID, "", "content")
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("unknown tenant is not found", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, idx.New().String(), user.ID, "title", "content")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestNoteServiceTenantIsolation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &NoteService{Store: st}

	acme := seedTenant(t, st, "acme", domain.PlanPro)
	globex := seedTenant(t, st, "globex", domain.PlanPro)
	alice := seedUser(t, st, "alice@acme.test", domain.RoleMember, acme.ID)
	bob := seedUser(t, st, "bob@globex.test", domain.RoleMember, globex.ID)

	note, err := svc.CreateNote(ctx, acme.ID, alice.ID, "acme secrets", "classified")
	require.NoError(t, err)

	_, err = svc.CreateNote(ctx, globex.ID, bob.ID, "globex plans", "q3 roadmap")
	require.NoError(t, err)

	t.Run("get across tenants reads as missing", func(t *testing.T) {
		_, err := svc.GetNote(ctx, globex.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := svc.GetNote(ctx, acme.ID, note.ID)
		require.NoError(t, err)
		require.Equal(t, note.ID, got.ID)
	})

	t.Run("list only returns own tenant", func(t *testing.T) {
		notes, err := svc.ListNotes(ctx, acme.ID)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.Equal(t, "acme secrets", notes[0].Title)
	})

	t.Run("update across tenants reads as missing", func(t *testing.T) {
		_, err := svc.UpdateNote(ctx, globex.ID, note.ID, "hijacked", "content")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete across tenants reads as missing", func(t *testing.T) {
		err := svc.DeleteNote(ctx, globex.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// The note must survive the attempt.
		_, err = svc.GetNote(ctx, acme.ID, note.ID)
		require.NoError(t, err)
	})
}

func TestTokenServiceLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	signer, err := jwtx.NewSigner("test-secret", "notetab-test", time.Hour)
	require.NoError(t, err)
	svc := &TokenService{Signer: signer, Store: st}

	tenant := seedTenant(t, st, "acme", domain.PlanFree)
	seedUser(t, st, "alice@acme.test", domain.RoleAdmin, tenant.ID)

	t.Run("issues token with tenant and role claims", func(t *testing.T) {
		res, err := svc.Login(ctx, "alice@acme.test", "password")
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		require.Equal(t, time.Hour, res.ExpiresIn)

		claims, err := signer.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, tenant.ID, claims.TenantID)
		require.Equal(t, "ADMIN", claims.Role)
		require.Equal(t, "alice@acme.test", claims.Email)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@acme.test", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email indistinguishable from wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@acme.test", "password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserServiceInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	acme := seedTenant(t, st, "acme", domain.PlanFree)
	globex := seedTenant(t, st, "globex", domain.PlanFree)

	t.Run("creates member in the admin's tenant", func(t *testing.T) {
		res, err := svc.Invite(ctx, acme.ID, "new@acme.test", "member", "s3cret")
		require.NoError(t, err)
		require.Equal(t, acme.ID, res.User.TenantID)
		require.Equal(t, domain.RoleMember, res.User.Role)
		require.Equal(t, "acme", res.Tenant.Slug)

		stored, err := st.Users().GetUserByEmail(ctx, "new@acme.test")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("s3cret", stored.PasswordHash))
	})

	t.Run("existing email is overwritten and re-parented", func(t *testing.T) {
		seedUser(t, st, "shared@example.test", domain.RoleMember, globex.ID)

		res, err := svc.Invite(ctx, acme.ID, "shared@example.test", "admin", "newpass")
		require.NoError(t, err)
		require.Equal(t, acme.ID, res.User.TenantID)
		require.Equal(t, domain.RoleAdmin, res.User.Role)

		stored, err := st.Users().GetUserByEmail(ctx, "shared@example.test")
		require.NoError(t, err)
		require.Equal(t, acme.ID, stored.TenantID)
		require.NoError(t, cryptox.VerifyPassword("newpass", stored.PasswordHash))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.Invite(ctx, acme.ID, "x@acme.test", "owner", "pw")
		require.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.Invite(ctx, acme.ID, "", "member", "pw")
		require.ErrorIs(t, err, ErrMissingField)

		_, err = svc.Invite(ctx, acme.ID, "x@acme.test", "member", "")
		require.ErrorIs(t, err, ErrMissingField)
	})
}

func TestTenantServiceUpgrade(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &TenantService{Store: st}

	acme := seedTenant(t, st, "acme", domain.PlanFree)
	globex := seedTenant(t, st, "globex", domain.PlanFree)

	t.Run("admin upgrades own tenant", func(t *testing.T) {
		res, err := svc.Upgrade(ctx, acme.ID, "acme")
		require.NoError(t, err)
		require.Equal(t, domain.PlanPro, res.Tenant.Plan)
		require.False(t, res.AlreadyUpgraded)

		stored, err := st.Tenants().GetTenantBySlug(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, domain.PlanPro, stored.Plan)
	})

	t.Run("repeat upgrade is a no-op success", func(t *testing.T) {
		res, err := svc.Upgrade(ctx, acme.ID, "acme")
		require.NoError(t, err)
		require.True(t, res.AlreadyUpgraded)
		require.Equal(t, domain.PlanPro, res.Tenant.Plan)
	})

	t.Run("cannot upgrade another tenant", func(t *testing.T) {
		_, err := svc.Upgrade(ctx, acme.ID, "globex")
		require.ErrorIs(t, err, ErrWrongTenant)

		stored, err := st.Tenants().GetTenantBySlug(ctx, "globex")
		require.NoError(t, err)
		require.Equal(t, domain.PlanFree, stored.Plan)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, err := svc.Upgrade(ctx, globex.ID, "initech")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
