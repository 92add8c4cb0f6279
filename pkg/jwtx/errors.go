package jwtx

import "errors"

var (
	// ErrNoSecret reports a signer constructed without key material. This is
	// a startup-time misconfiguration, never a per-request condition.
	ErrNoSecret = errors.New("jwtx: signing secret is empty")

	// ErrMissingClaim reports an attempt to issue a token with a required
	// claim left empty.
	ErrMissingClaim = errors.New("jwtx: missing required claim")

	// ErrInvalidToken covers every verification failure: bad signature,
	// malformed structure, expired or not-yet-valid timestamps, wrong issuer.
	// Callers treat verification as a query and must not distinguish further.
	ErrInvalidToken = errors.New("jwtx: invalid token")
)
