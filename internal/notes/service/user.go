package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/aussiebroadwan/notetab/pkg/idx"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

// UserService manages user accounts within a tenant.
type UserService struct {
	Store store.Store
}

// InviteResult reports the account an invite produced and the tenant it
// belongs to.
type InviteResult struct {
	User   domain.User
	Tenant domain.Tenant
}

// Invite creates a user in the inviting admin's tenant. If the email already
// exists the account is overwritten, including re-parenting it from another
// tenant. That overwrite is deliberate; it lives here so the policy can be
// swapped without touching handlers. The tenant id is always the admin's own,
// never caller input.
func (s *UserService) Invite(
	ctx context.Context,
	adminTenantID, email, roleInput, password string,
) (InviteResult, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(roleInput) == "" || password == "" {
		return InviteResult{}, ErrMissingField
	}

	// Role strings are normalised exactly once, here at the boundary.
	role, err := domain.ParseRole(roleInput)
	if err != nil {
		return InviteResult{}, err
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, adminTenantID)
	if err != nil {
		return InviteResult{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash invite password", "err", err)
		return InviteResult{}, err
	}

	now := time.Now().UTC()
	candidate := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TenantID:     tenant.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var saved domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		saved, err = tx.Users().UpsertUserByEmail(ctx, candidate)
		return err
	})
	if err != nil {
		log.Error("failed to upsert invited user", "email", email, "err", err)
		return InviteResult{}, err
	}

	log.Info("user invited",
		"email", saved.Email,
		"role", saved.Role.String(),
		"tenant", tenant.Slug,
	)

	return InviteResult{User: saved, Tenant: tenant}, nil
}
