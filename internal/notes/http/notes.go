package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/service"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/httpx"
	"github.com/aussiebroadwan/notetab/pkg/notesdk"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

// NotesHandler serves the tenant-scoped note endpoints. The tenant and user
// ids always come from the verified claims on the request context, never from
// the request body or URL.
type NotesHandler struct {
	NoteService *service.NoteService
}

func toNoteResponse(n domain.Note) notesdk.NoteResponse {
	return notesdk.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		TenantID:  n.TenantID,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// HandleCreate godoc
//
//	@Summary		Create Note Endpoint
//	@Description	Create a note in the caller's tenant. Free-plan tenants are limited to 3 notes;
//	@Description	the limit is lifted immediately when the tenant upgrades to the pro plan.
//	@Tags			Notes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		notesdk.NoteRequest		true	"Note content"
//	@Success		201		{object}	notesdk.NoteResponse	"the created note"
//	@Failure		400		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		402		{object}	notesdk.ErrorResponse	"free plan note limit reached"
//	@Failure		500		{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	var req notesdk.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
			Error:            notesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	note, err := h.NoteService.CreateNote(ctx, claims.TenantID, claims.Subject, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			httpx.WriteJSON(w, http.StatusBadRequest, notesdk.ErrorResponse{
				Error:            notesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "title and content are required",
			})
		case errors.Is(err, service.ErrQuotaExceeded):
			notesdk.ErrQuotaExceeded.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			// The token references a tenant that no longer exists.
			notesdk.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to create note", "err", err)
			notesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNoteResponse(note))
}

// HandleList godoc
//
//	@Summary		List Notes Endpoint
//	@Description	List all notes in the caller's tenant, most recent first.
//	@Tags			Notes
//	@Produce		json
//	@Success		200	{array}		notesdk.NoteResponse	"notes in the caller's tenant"
//	@Failure		401	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	notesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		notesdk.ErrServerError.WriteError(w)
		return
	}

	notes, err := h.NoteService.ListNotes(ctx, claims.TenantID)
	if err != nil {
		log.Error("failed to list notes", "err", err)
		notesdk.ErrServerError.WriteError(w)
		return
	}

	responses := make([]notesdk.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, toNoteResponse(n))
	}

	httpx.WriteJSON(w, http.StatusOK, responses)
}
