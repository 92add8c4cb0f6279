package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

type LoginHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and receive a JWT access token.
//	@Description	The token carries the user's tenant and role claims and is valid for one hour.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	notesdk.LoginResponse	"token, token_type, expires_in, user"
//	@Failure		400		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req notesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "email and password are required",
		})
		return
	}

	result, err := h.TokenService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			notesdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, notesdk.LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: int(result.ExpiresIn.Seconds()),
		User: notesdk.UserInfo{
			ID:       result.User.ID,
			Email:    result.User.Email,
			Role:     result.User.Role.String(),
			TenantID: result.User.TenantID,
		},
	})
}
