package notesdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents the standard error envelope returned by the notes
// service. Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest carries the credentials for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from a successful login.
type LoginResponse struct {
	// Token is the JWT access token used to authenticate API requests
	Token string `json:"token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// User describes the authenticated account
	User UserInfo `json:"user"`
}

// UserInfo describes an account as reported by the API.
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// ============================================================================
// Note Types
// ============================================================================

// NoteRequest is the body for creating a note. Ownership is taken from the
// caller's token, so the request carries content fields only.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest is the body for replacing a note's content. TenantID and
// UserID are pointers so the server can tell "absent" from "present": sending
// either one is rejected, ownership fields are immutable.
type UpdateNoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	TenantID *string `json:"tenant_id,omitempty"`
	UserID   *string `json:"user_id,omitempty"`
}

// NoteResponse represents a note as returned by the API.
type NoteResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`

	// CreatedAt / UpdatedAt are RFC3339 timestamps
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ============================================================================
// Invite Types
// ============================================================================

// InviteRequest asks the service to add a user to the caller's tenant.
// Admin only.
type InviteRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"` // "admin" or "member", case-insensitive
	Password string `json:"password"`
}

// InviteResponse describes the invited (or overwritten) account.
type InviteResponse struct {
	User       UserInfo `json:"user"`
	TenantSlug string   `json:"tenant_slug"`
}

// ============================================================================
// Tenant Types
// ============================================================================

// UpgradeResponse is returned from POST /v1/tenants/{slug}/upgrade.
type UpgradeResponse struct {
	TenantID string `json:"tenant_id"`
	Slug     string `json:"slug"`
	Plan     string `json:"plan"`

	// AlreadyUpgraded is true when the tenant was on the pro plan before the
	// call. The request still succeeds; upgrades are idempotent.
	AlreadyUpgraded bool `json:"already_upgraded"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz (readyz includes the Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
