package httpx

import "net/http"

// RequireRole gates a handler on the caller's role claim. The comparison is
// exact: roles are normalised to their canonical uppercase form at token
// issuance, so no case folding happens here. A failed check is 403, distinct
// from the 401 an unauthenticated caller receives.
func RequireRole(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				// AuthnMiddleware was not applied upstream; treat as unauthenticated.
				writeBearerError(w, "missing bearer token")
				return
			}

			if claims.Role != required {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				WriteError(w, http.StatusForbidden, "insufficient_role", "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
