package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/idx"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

// FreeNoteLimit is the maximum number of notes a free-plan tenant may hold.
const FreeNoteLimit = 3

var (
	ErrQuotaExceeded = errors.New("free plan note limit reached")
	ErrMissingField  = errors.New("missing required field")
)

// NoteService implements the tenant-scoped note operations. The caller's
// tenant id always comes from verified claims, never from request input.
type NoteService struct {
	Store store.Store
}

// CreateNote persists a note for the caller's tenant, enforcing the free-plan
// quota. The count is taken fresh on every attempt; two concurrent creates on
// a tenant sitting at the limit can still both pass the check. Creates are
// not serialised, that slack is accepted.
func (s *NoteService) CreateNote(ctx context.Context, tenantID, userID, title, content string) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		return domain.Note{}, err // store.ErrNotFound surfaces as a missing tenant
	}

	if tenant.Plan == domain.PlanFree {
		count, err := s.Store.Notes().CountNotesByTenant(ctx, tenantID)
		if err != nil {
			log.Error("failed to count notes", "err", err)
			return domain.Note{}, err
		}
		if count >= FreeNoteLimit {
			return domain.Note{}, ErrQuotaExceeded
		}
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return domain.Note{}, ErrMissingField
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        idx.New().String(),
		Title:     title,
		Content:   content,
		TenantID:  tenantID, // forced from claims
		UserID:    userID,   // forced from claims
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		log.Error("failed to create note", "err", err)
		return domain.Note{}, err
	}

	return note, nil
}

// ListNotes returns the tenant's notes, most recent first.
func (s *NoteService) ListNotes(ctx context.Context, tenantID string) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesByTenant(ctx, tenantID)
}

// GetNote returns a single note. Cross-tenant ids come back as
// store.ErrNotFound.
func (s *NoteService) GetNote(ctx context.Context, tenantID, id string) (domain.Note, error) {
	return s.Store.Notes().GetNote(ctx, id, tenantID)
}

// UpdateNote replaces title and content on a tenant-scoped note. Ownership
// fields are immutable; rejecting attempts to change them happens at the
// request boundary before this is called.
func (s *NoteService) UpdateNote(ctx context.Context, tenantID, id, title, content string) (domain.Note, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return domain.Note{}, ErrMissingField
	}
	return s.Store.Notes().UpdateNote(ctx, id, tenantID, title, content)
}

// DeleteNote removes a tenant-scoped note.
func (s *NoteService) DeleteNote(ctx context.Context, tenantID, id string) error {
	return s.Store.Notes().DeleteNote(ctx, id, tenantID)
}
