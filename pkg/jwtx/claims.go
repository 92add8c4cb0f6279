package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the validity window for issued tokens. There is no
// refresh flow; expiry is the only invalidation mechanism, so keep it short.
const DefaultAccessTokenTTL = time.Hour

// Claims are the identity assertion embedded in every access token. A token
// never carries authority beyond the tenant and role encoded here.
type Claims struct {
	jwt.RegisteredClaims

	// TenantID scopes every data access performed under this token.
	TenantID string `json:"tenant_id"`

	// Role is the canonical uppercase role name ("ADMIN" or "MEMBER").
	Role string `json:"role"`

	// Email of the authenticated user, informational.
	Email string `json:"email"`
}

// NewAccessClaims builds minimally-correct claims for a user.
func NewAccessClaims(
	subject, tenantID, role, email string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TenantID: tenantID,
		Role:     role,
		Email:    email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
