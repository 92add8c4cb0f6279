package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

type UpgradeHandler struct {
	TenantService *service.TenantService
}

// ServeHTTP godoc
//
//	@Summary		Tenant Upgrade Endpoint
//	@Description	Upgrade the tenant identified by slug to the pro plan, lifting the free-plan note limit.
//	@Description	Admin only, and restricted to the caller's own tenant. Repeating the call is a no-op success.
//	@Tags			Tenants
//	@Produce		json
//	@Param			slug	path		string					true	"Tenant slug"
//	@Success		200		{object}	notesdk.UpgradeResponse	"tenant_id, slug, plan, already_upgraded"
//	@Failure		401		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tenants/{slug}/upgrade [post].
func (h *UpgradeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	result, err := h.TenantService.Upgrade(ctx, claims.TenantID, r.PathValue("slug"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			notesdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrWrongTenant):
			notesdk.ErrWrongTenant.WriteError(w)
		default:
			log.Error("failed to upgrade tenant", "err", err)
			notesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.UpgradeResponse{
		TenantID:        result.Tenant.ID,
		Slug:            result.Tenant.Slug,
		Plan:            string(result.Tenant.Plan),
		AlreadyUpgraded: result.AlreadyUpgraded,
	})
}
