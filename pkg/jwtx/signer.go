package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer issues and verifies HS256 access tokens with a single shared secret.
// The secret is held only by this process; any tampering with an encoded
// payload invalidates the signature.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner builds a Signer. An empty secret is rejected here so that a
// misconfigured deployment fails at startup rather than on first request.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue signs a token for the given identity. All four claim values are
// required; tokens with partial identity must never exist.
func (s *Signer) Issue(subject, tenantID, role, email string, now time.Time) (string, error) {
	if subject == "" || tenantID == "" || role == "" || email == "" {
		return "", ErrMissingClaim
	}

	claims := NewAccessClaims(subject, tenantID, role, email, s.ttl, s.issuer, now)
	return s.Sign(claims)
}

// Sign encodes and signs pre-built claims.
func (s *Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string. Every failure mode (bad
// signature, malformed payload, expired or not-yet-valid, wrong issuer)
// collapses into ErrInvalidToken.
func (s *Signer) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// TTL reports the validity window used for issued tokens.
func (s *Signer) TTL() time.Duration { return s.ttl }
