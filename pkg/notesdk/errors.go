package notesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/notetab/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeInsufficientRole   = "insufficient_role"
	ErrorCodeWrongTenant        = "wrong_tenant"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeQuotaExceeded      = "quota_exceeded"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError represents an error response from the notes service. It implements
// the error interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "quota_exceeded")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is malformed or missing
	// required parameters.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned when the email or password is wrong.
	// Unknown emails and wrong passwords share this error deliberately.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrInsufficientRole is returned when the caller's role does not permit
	// the operation.
	ErrInsufficientRole = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientRole,
		Description: "insufficient role",
	}

	// ErrWrongTenant is returned when the caller targets a tenant other than
	// their own.
	ErrWrongTenant = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeWrongTenant,
		Description: "cannot act on another tenant",
	}

	// ErrNotFound is returned when the resource does not exist within the
	// caller's tenant. Resources in other tenants report this same error.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrQuotaExceeded is returned when a free-plan tenant is at its note
	// limit. Upgrading the tenant lifts the limit.
	ErrQuotaExceeded = &APIError{
		StatusCode:  http.StatusPaymentRequired,
		Code:        ErrorCodeQuotaExceeded,
		Description: "free plan note limit reached, upgrade to pro to add more notes",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse converts a non-2xx HTTP response body into an *APIError.
// Bodies that are not the standard envelope still produce a usable error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        envelope.Error,
			Description: envelope.ErrorDescription,
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("unexpected response: %s", resp.Status),
	}
}
