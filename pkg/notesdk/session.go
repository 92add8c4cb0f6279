package notesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated connection to the notes service, bound to the
// tenant and role of the user who logged in. Sessions are safe for concurrent
// use; the token is immutable once issued.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
	user      UserInfo
}

func newSession(c *SDKClient, resp LoginResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	expiresAt = expiresAt.Add(-30 * time.Second) // expiry buffer

	return &Session{
		client:    c,
		token:     resp.Token,
		expiresAt: expiresAt,
		user:      resp.User,
	}
}

// User returns the account this session was issued for.
func (s *Session) User() UserInfo { return s.user }

// validToken returns the access token, or an error if it has expired. There
// is no refresh flow; callers must log in again.
func (s *Session) validToken() (string, error) {
	if time.Now().After(s.expiresAt) {
		return "", &APIError{
			StatusCode:  http.StatusUnauthorized,
			Code:        ErrorCodeInvalidToken,
			Description: "access token expired, log in again",
		}
	}
	return s.token, nil
}

// CreateNote adds a note to the session's tenant.
func (s *Session) CreateNote(ctx context.Context, title, content string) (NoteResponse, error) {
	payload, err := json.Marshal(NoteRequest{Title: title, Content: content})
	if err != nil {
		return NoteResponse{}, fmt.Errorf("failed to encode note request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/notes", bytes.NewReader(payload))
	if err != nil {
		return NoteResponse{}, err
	}

	var note NoteResponse
	if err := decodeJSON(resp, &note, http.StatusCreated); err != nil {
		return NoteResponse{}, err
	}
	return note, nil
}

// ListNotes returns all notes in the session's tenant, most recent first.
func (s *Session) ListNotes(ctx context.Context) ([]NoteResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/notes", nil)
	if err != nil {
		return nil, err
	}

	var notes []NoteResponse
	if err := decodeJSON(resp, &notes, http.StatusOK); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches a single note by id.
func (s *Session) GetNote(ctx context.Context, id string) (NoteResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return NoteResponse{}, err
	}

	var note NoteResponse
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return NoteResponse{}, err
	}
	return note, nil
}

// UpdateNote replaces a note's title and content.
func (s *Session) UpdateNote(ctx context.Context, id, title, content string) (NoteResponse, error) {
	payload, err := json.Marshal(UpdateNoteRequest{Title: title, Content: content})
	if err != nil {
		return NoteResponse{}, fmt.Errorf("failed to encode note request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/notes/"+url.PathEscape(id), bytes.NewReader(payload))
	if err != nil {
		return NoteResponse{}, err
	}

	var note NoteResponse
	if err := decodeJSON(resp, &note, http.StatusOK); err != nil {
		return NoteResponse{}, err
	}
	return note, nil
}

// DeleteNote removes a note by id.
func (s *Session) DeleteNote(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// InviteUser adds a user to the session's tenant. Requires the admin role.
func (s *Session) InviteUser(ctx context.Context, email, role, password string) (InviteResponse, error) {
	payload, err := json.Marshal(InviteRequest{Email: email, Role: role, Password: password})
	if err != nil {
		return InviteResponse{}, fmt.Errorf("failed to encode invite request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/users/invite", bytes.NewReader(payload))
	if err != nil {
		return InviteResponse{}, err
	}

	var invite InviteResponse
	if err := decodeJSON(resp, &invite, http.StatusCreated); err != nil {
		return InviteResponse{}, err
	}
	return invite, nil
}

// UpgradeTenant moves the tenant identified by slug to the pro plan. Requires
// the admin role and the session's own tenant; repeating the call is safe.
func (s *Session) UpgradeTenant(ctx context.Context, slug string) (UpgradeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/tenants/"+url.PathEscape(slug)+"/upgrade", nil)
	if err != nil {
		return UpgradeResponse{}, err
	}

	var upgrade UpgradeResponse
	if err := decodeJSON(resp, &upgrade, http.StatusOK); err != nil {
		return UpgradeResponse{}, err
	}
	return upgrade, nil
}
