package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

type InviteHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User Invitation Endpoint
//	@Description	Add a user to the caller's tenant. This is an admin-only operation.
//	@Description	If the email already exists, the account is overwritten and moved into the caller's tenant.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.InviteRequest	true	"Invite request"
//	@Success		201		{object}	notesdk.InviteResponse	"user, tenant_slug"
//	@Failure		400		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/users/invite [post].
func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	var req notesdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	result, err := h.UserService.Invite(ctx, claims.TenantID, req.Email, req.Role, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
				Error:            notesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "email, role and password are required",
			})
		case errors.Is(err, domain.ErrInvalidRole):
			httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
				Error:            notesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "role must be admin or member",
			})
		case errors.Is(err, store.ErrNotFound):
			// The token references a tenant that no longer exists.
			notesdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to invite user", "err", err)
			notesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, notesdk.InviteResponse{
		User: notesdk.UserInfo{
			ID:       result.User.ID,
			Email:    result.User.Email,
			Role:     result.User.Role.String(),
			TenantID: result.User.TenantID,
		},
		TenantSlug: result.Tenant.Slug,
	})
}
