package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

// ErrWrongTenant reports a caller acting on a tenant other than their own.
// This is an independent check on top of the role gate: an admin of tenant A
// can never upgrade tenant B.
var ErrWrongTenant = errors.New("cannot act on another tenant")

// TenantService manages tenant plan state.
type TenantService struct {
	Store store.Store
}

// UpgradeResult carries the tenant after an upgrade attempt and whether the
// call actually changed anything.
type UpgradeResult struct {
	Tenant          domain.Tenant
	AlreadyUpgraded bool
}

// Upgrade moves the tenant identified by slug to the pro plan. Upgrading an
// already-pro tenant is a no-op success, so retries are safe. Subsequent
// note creates bypass the free quota immediately; existing notes are
// untouched.
func (s *TenantService) Upgrade(ctx context.Context, callerTenantID, slug string) (UpgradeResult, error) {
	log := slogx.FromContext(ctx)

	tenant, err := s.Store.Tenants().GetTenantBySlug(ctx, slug)
	if err != nil {
		return UpgradeResult{}, err
	}

	if tenant.ID != callerTenantID {
		log.Warn("cross-tenant upgrade attempt",
			"caller_tenant", callerTenantID,
			"target_tenant", tenant.ID,
		)
		return UpgradeResult{}, ErrWrongTenant
	}

	if tenant.Plan == domain.PlanPro {
		return UpgradeResult{Tenant: tenant, AlreadyUpgraded: true}, nil
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Tenants().UpdateTenantPlan(ctx, tenant.ID, domain.PlanPro)
	})
	if err != nil {
		log.Error("failed to upgrade tenant", "tenant", tenant.Slug, "err", err)
		return UpgradeResult{}, err
	}

	tenant.Plan = domain.PlanPro
	log.Info("tenant upgraded", "tenant", tenant.Slug)

	return UpgradeResult{Tenant: tenant}, nil
}
