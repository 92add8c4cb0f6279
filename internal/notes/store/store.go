package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
//
// Every Notes method that addresses a single note takes the caller's tenant
// id alongside the note id: tenant scoping is part of the query, not a check
// layered on top, so a cross-tenant id is indistinguishable from a missing
// one.
type Store interface {
	Users() Users
	Tenants() Tenants
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpsertUserByEmail inserts a user keyed by email, or overwrites the
	// existing account's password hash, role and tenant when the email is
	// already taken. This is the invite's create-or-overwrite semantics;
	// callers own the decision to re-parent an account across tenants.
	UpsertUserByEmail(ctx context.Context, u domain.User) (domain.User, error)
}

type Tenants interface {
	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// GetTenantBySlug returns a tenant by its unique slug.
	GetTenantBySlug(ctx context.Context, slug string) (domain.Tenant, error)

	// UpsertTenantBySlug inserts a tenant or refreshes its name, keyed by
	// slug. The plan of an existing tenant is left untouched; plan changes
	// go through UpdateTenantPlan only.
	UpsertTenantBySlug(ctx context.Context, t domain.Tenant) (domain.Tenant, error)

	// UpdateTenantPlan sets the plan and bumps updated_at.
	UpdateTenantPlan(ctx context.Context, tenantID string, plan domain.Plan) error
}

type Notes interface {
	// CreateNote inserts a new note (id is provided by app via ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// GetNote returns a note by id, scoped to the tenant.
	GetNote(ctx context.Context, id, tenantID string) (domain.Note, error)

	// ListNotesByTenant returns a tenant's notes, newest first.
	ListNotesByTenant(ctx context.Context, tenantID string) ([]domain.Note, error)

	// UpdateNote sets title and content on a tenant-scoped note and returns
	// the updated row. Ownership fields are never touched.
	UpdateNote(ctx context.Context, id, tenantID, title, content string) (domain.Note, error)

	// DeleteNote removes a tenant-scoped note.
	DeleteNote(ctx context.Context, id, tenantID string) error

	// CountNotesByTenant returns a fresh note count for quota checks.
	CountNotesByTenant(ctx context.Context, tenantID string) (int64, error)
}
