package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/aussiebroadwan/notetab/pkg/idx"
	"github.com/aussiebroadwan/notetab/pkg/jwtx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "notetab-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, ".pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestServer spins up the full router over an in-memory store seeded with
// two tenants:
//
//	acme (free):   alice@acme.test (admin), bob@acme.test (member)
//	globex (free): carol@globex.test (admin)
//
// All passwords are "password".
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Now().UTC()
	seedTenant := func(slug string) domain.Tenant {
		tenant, err := st.Tenants().UpsertTenantBySlug(ctx, domain.Tenant{
			ID:        idx.New().String(),
			Name:      slug,
			Slug:      slug,
			Plan:      domain.PlanFree,
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
		return tenant
	}
	seedUser := func(email string, role domain.Role, tenantID string) {
		hash, err := cryptox.HashPassword("password")
		require.NoError(t, err)
		_, err = st.Users().UpsertUserByEmail(ctx, domain.User{
			ID:           idx.New().String(),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			TenantID:     tenantID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		require.NoError(t, err)
	}

	acme := seedTenant("acme")
	globex := seedTenant("globex")
	seedUser("alice@acme.test", domain.RoleAdmin, acme.ID)
	seedUser("bob@acme.test", domain.RoleMember, acme.ID)
	seedUser("carol@globex.test", domain.RoleAdmin, globex.ID)

	signer, err := jwtx.NewSigner("test-secret", "notetab-test", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := NewRouter(signer, "test", st, logger)
	router.TokenService = &service.TokenService{Signer: signer, Store: st}
	router.NoteService = &service.NoteService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.TenantService = &service.TenantService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, email string) *notesdk.Session {
	t.Helper()
	session, err := notesdk.NewSDKClient(srv.URL).Login(context.Background(), email, "password")
	require.NoError(t, err)
	return session
}

// rawToken logs in over plain HTTP and returns the bearer token, for tests
// that need to craft requests the SDK refuses to send.
func rawToken(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	payload, err := json.Marshal(notesdk.LoginRequest{Email: email, Password: "password"})
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+"/v1/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp notesdk.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	return loginResp.Token
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *notesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	client := notesdk.NewSDKClient(srv.URL)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		session, err := client.Login(ctx, "alice@acme.test", "password")
		require.NoError(t, err)
		require.Equal(t, "alice@acme.test", session.User().Email)
		require.Equal(t, "ADMIN", session.User().Role)
		require.NotEmpty(t, session.User().TenantID)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := client.Login(ctx, "alice@acme.test", "nope")
		requireAPIError(t, err, http.StatusUnauthorized, notesdk.ErrorCodeInvalidCredentials)
	})

	t.Run("unknown email rejected with the same error", func(t *testing.T) {
		_, err := client.Login(ctx, "ghost@acme.test", "password")
		requireAPIError(t, err, http.StatusUnauthorized, notesdk.ErrorCodeInvalidCredentials)
	})
}

func TestNotesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		name   string
		method string
		path   string
	}{
		{"list", http.MethodGet, "/v1/notes"},
		{"create", http.MethodPost, "/v1/notes"},
		{"get", http.MethodGet, "/v1/notes/some-id"},
		{"update", http.MethodPut, "/v1/notes/some-id"},
		{"delete", http.MethodDelete, "/v1/notes/some-id"},
	} {
		t.Run(tc.name+" without token", func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			require.NoError(t, err)

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})

		t.Run(tc.name+" with garbage token", func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer not-a-jwt")

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestNoteLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	session := login(t, srv, "bob@acme.test")

	note, err := session.CreateNote(ctx, "shopping", "milk, eggs")
	require.NoError(t, err)
	require.NotEmpty(t, note.ID)
	require.Equal(t, session.User().TenantID, note.TenantID)
	require.Equal(t, session.User().ID, note.UserID)

	t.Run("get returns the note", func(t *testing.T) {
		got, err := session.GetNote(ctx, note.ID)
		require.NoError(t, err)
		require.Equal(t, "shopping", got.Title)
	})

	t.Run("update replaces content", func(t *testing.T) {
		updated, err := session.UpdateNote(ctx, note.ID, "shopping", "milk, eggs, bread")
		require.NoError(t, err)
		require.Equal(t, "milk, eggs, bread", updated.Content)
	})

	t.Run("list contains the note", func(t *testing.T) {
		notes, err := session.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
	})

	t.Run("delete removes it", func(t *testing.T) {
		require.NoError(t, session.DeleteNote(ctx, note.ID))

		_, err := session.GetNote(ctx, note.ID)
		requireAPIError(t, err, http.StatusNotFound, notesdk.ErrorCodeNotFound)

		notes, err := session.ListNotes(ctx)
		require.NoError(t, err)
		require.Empty(t, notes)
	})

	t.Run("blank fields rejected", func(t *testing.T) {
		_, err := session.CreateNote(ctx, "", "content")
		requireAPIError(t, err, http.StatusBadRequest, notesdk.ErrorCodeInvalidRequest)
	})
}

func TestUpdateCannotMoveNote(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	session := login(t, srv, "bob@acme.test")

	note, err := session.CreateNote(ctx, "title", "content")
	require.NoError(t, err)

	// The SDK never sends ownership fields; craft the requests by hand.
	token := rawToken(t, srv, "bob@acme.test")
	other := "other-tenant"
	for name, body := range map[string]string{
		"tenant_id": `{"title":"t","content":"c","tenant_id":"` + other + `"}`,
		"user_id":   `{"title":"t","content":"c","user_id":"` + other + `"}`,
		// Even the current value is rejected; the field must be absent.
		"own tenant_id": `{"title":"t","content":"c","tenant_id":"` + note.TenantID + `"}`,
	} {
		t.Run(name+" in body rejected", func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPut,
				srv.URL+"/v1/notes/"+note.ID, strings.NewReader(body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	// The note is untouched.
	got, err := session.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.Equal(t, "title", got.Title)
}

func TestTenantIsolation(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	acme := login(t, srv, "bob@acme.test")
	globex := login(t, srv, "carol@globex.test")

	note, err := acme.CreateNote(ctx, "acme plans", "secret")
	require.NoError(t, err)

	t.Run("other tenant cannot read", func(t *testing.T) {
		_, err := globex.GetNote(ctx, note.ID)
		requireAPIError(t, err, http.StatusNotFound, notesdk.ErrorCodeNotFound)
	})

	t.Run("other tenant cannot update", func(t *testing.T) {
		_, err := globex.UpdateNote(ctx, note.ID, "hijack", "x")
		requireAPIError(t, err, http.StatusNotFound, notesdk.ErrorCodeNotFound)
	})

	t.Run("other tenant cannot delete", func(t *testing.T) {
		err := globex.DeleteNote(ctx, note.ID)
		requireAPIError(t, err, http.StatusNotFound, notesdk.ErrorCodeNotFound)
	})

	t.Run("lists stay separate", func(t *testing.T) {
		notes, err := globex.ListNotes(ctx)
		require.NoError(t, err)
		require.Empty(t, notes)

		notes, err = acme.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
	})
}

func TestQuotaAndUpgrade(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	member := login(t, srv, "bob@acme.test")
	admin := login(t, srv, "alice@acme.test")

	for i := 0; i < service.FreeNoteLimit; i++ {
		_, err := member.CreateNote(ctx, "note", "content")
		require.NoError(t, err)
	}

	t.Run("fourth note hits the free limit", func(t *testing.T) {
		_, err := member.CreateNote(ctx, "note", "content")
		requireAPIError(t, err, http.StatusPaymentRequired, notesdk.ErrorCodeQuotaExceeded)
	})

	t.Run("member cannot upgrade", func(t *testing.T) {
		_, err := member.UpgradeTenant(ctx, "acme")
		requireAPIError(t, err, http.StatusForbidden, notesdk.ErrorCodeInsufficientRole)
	})

	t.Run("admin cannot upgrade another tenant", func(t *testing.T) {
		_, err := admin.UpgradeTenant(ctx, "globex")
		requireAPIError(t, err, http.StatusForbidden, notesdk.ErrorCodeWrongTenant)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, err := admin.UpgradeTenant(ctx, "initech")
		requireAPIError(t, err, http.StatusNotFound, notesdk.ErrorCodeNotFound)
	})

	t.Run("admin upgrades own tenant and the limit lifts", func(t *testing.T) {
		upgrade, err := admin.UpgradeTenant(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, "pro", upgrade.Plan)
		require.False(t, upgrade.AlreadyUpgraded)

		_, err = member.CreateNote(ctx, "fourth", "content")
		require.NoError(t, err)
	})

	t.Run("repeat upgrade is idempotent", func(t *testing.T) {
		upgrade, err := admin.UpgradeTenant(ctx, "acme")
		require.NoError(t, err)
		require.True(t, upgrade.AlreadyUpgraded)
	})
}

func TestInviteEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	admin := login(t, srv, "alice@acme.test")
	member := login(t, srv, "bob@acme.test")

	t.Run("member cannot invite", func(t *testing.T) {
		_, err := member.InviteUser(ctx, "new@acme.test", "member", "pw")
		requireAPIError(t, err, http.StatusForbidden, notesdk.ErrorCodeInsufficientRole)
	})

	t.Run("admin invites into own tenant", func(t *testing.T) {
		invite, err := admin.InviteUser(ctx, "dave@acme.test", "member", "s3cret")
		require.NoError(t, err)
		require.Equal(t, admin.User().TenantID, invite.User.TenantID)
		require.Equal(t, "MEMBER", invite.User.Role)
		require.Equal(t, "acme", invite.TenantSlug)

		// The invited user can log in straight away.
		session, err := notesdk.NewSDKClient(srv.URL).Login(ctx, "dave@acme.test", "s3cret")
		require.NoError(t, err)
		require.Equal(t, admin.User().TenantID, session.User().TenantID)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := admin.InviteUser(ctx, "x@acme.test", "owner", "pw")
		requireAPIError(t, err, http.StatusBadRequest, notesdk.ErrorCodeInvalidRequest)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := admin.InviteUser(ctx, "", "member", "pw")
		requireAPIError(t, err, http.StatusBadRequest, notesdk.ErrorCodeInvalidRequest)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	client := notesdk.NewSDKClient(srv.URL)

	t.Run("livez", func(t *testing.T) {
		health, err := client.Livez(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "test", health.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		health, err := client.Readyz(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
	})
}
