package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/notetab/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-not-for-production"
	testIssuer = "notetab-test"
)

func newSigner(t *testing.T, ttl time.Duration) *jwtx.Signer {
	t.Helper()
	s, err := jwtx.NewSigner(testSecret, testIssuer, ttl)
	require.NoError(t, err)
	return s
}

func TestNewSignerRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSigner("", testIssuer, time.Hour)
	require.ErrorIs(t, err, jwtx.ErrNoSecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s := newSigner(t, time.Hour)
	now := time.Now()

	raw, err := s.Issue("user-1", "tenant-1", "ADMIN", "admin@acme.test", now)
	require.NoError(t, err)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.Equal(t, "ADMIN", claims.Role)
	require.Equal(t, "admin@acme.test", claims.Email)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestIssueRejectsPartialIdentity(t *testing.T) {
	t.Parallel()

	s := newSigner(t, time.Hour)
	now := time.Now()

	for _, args := range [][4]string{
		{"", "tenant-1", "ADMIN", "a@b.test"},
		{"user-1", "", "ADMIN", "a@b.test"},
		{"user-1", "tenant-1", "", "a@b.test"},
		{"user-1", "tenant-1", "ADMIN", ""},
	} {
		_, err := s.Issue(args[0], args[1], args[2], args[3], now)
		require.ErrorIs(t, err, jwtx.ErrMissingClaim)
	}
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	s := newSigner(t, time.Hour)

	t.Run("empty token", func(t *testing.T) {
		_, err := s.Verify("")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := s.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := newSigner(t, time.Hour)
		raw, err := short.Issue("user-1", "tenant-1", "MEMBER", "u@acme.test",
			time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("tampered payload invalidates signature", func(t *testing.T) {
		raw, err := s.Issue("user-1", "tenant-1", "MEMBER", "u@acme.test", time.Now())
		require.NoError(t, err)

		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)

		// Swap in a different (well-formed) payload segment.
		other, err := s.Issue("user-2", "tenant-2", "ADMIN", "x@acme.test", time.Now())
		require.NoError(t, err)
		forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

		_, err = s.Verify(forged)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		foreign, err := jwtx.NewSigner("some-other-secret", testIssuer, time.Hour)
		require.NoError(t, err)
		raw, err := foreign.Issue("user-1", "tenant-1", "MEMBER", "u@acme.test", time.Now())
		require.NoError(t, err)

		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign, err := jwtx.NewSigner(testSecret, "someone-else", time.Hour)
		require.NoError(t, err)
		raw, err := foreign.Issue("user-1", "tenant-1", "MEMBER", "u@acme.test", time.Now())
		require.NoError(t, err)

		_, err = s.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})
}
