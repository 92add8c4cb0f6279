package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

// HandleGet godoc
//
//	@Summary		Get Note Endpoint
//	@Description	Fetch a single note by id. Notes belonging to other tenants report not found.
//	@Tags			Notes
//	@Produce		json
//	@Param			id	path		string					true	"Note ID"
//	@Success		200	{object}	notesdk.NoteResponse	"the note"
//	@Failure		401	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notes/{id} [get].
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	note, err := h.NoteService.GetNote(ctx, claims.TenantID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to fetch note", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleUpdate godoc
//
//	@Summary		Update Note Endpoint
//	@Description	Replace a note's title and content. Ownership fields are immutable:
//	@Description	requests carrying tenant_id or user_id are rejected.
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Note ID"
//	@Param			request	body		notesdk.UpdateNoteRequest	true	"New note content"
//	@Success		200		{object}	notesdk.NoteResponse		"the updated note"
//	@Failure		400		{object}	notesdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	notesdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	notesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	notesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notes/{id} [put].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	var req notesdk.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	// Ownership is fixed at creation. Any attempt to move a note between
	// tenants or users is rejected outright, even if the value matches the
	// current one.
	if req.TenantID != nil || req.UserID != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "tenant_id and user_id cannot be changed",
		})
		return
	}

	note, err := h.NoteService.UpdateNote(ctx, claims.TenantID, r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
				Error:            notesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "title and content are required",
			})
		case errors.Is(err, store.ErrNotFound):
			notesdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to update note", "err", err)
			notesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleDelete godoc
//
//	@Summary		Delete Note Endpoint
//	@Description	Delete a note by id. Notes belonging to other tenants report not found.
//	@Tags			Notes
//	@Produce		json
//	@Param			id	path	string	true	"Note ID"
//	@Success		204	"note deleted"
//	@Failure		401	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	if err := h.NoteService.DeleteNote(ctx, claims.TenantID, r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to delete note", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
