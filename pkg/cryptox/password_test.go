package cryptox_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := cryptox.HashPassword("password")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	t.Run("correct password verifies", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("password", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		require.Error(t, cryptox.VerifyPassword("not-the-password", hash))
	})

	t.Run("same password hashes to different strings", func(t *testing.T) {
		other, err := cryptox.HashPassword("password")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
		require.NoError(t, cryptox.VerifyPassword("password", other))
	})

	t.Run("mangled hash is rejected", func(t *testing.T) {
		require.Error(t, cryptox.VerifyPassword("password", "$argon2id$v=19$garbage"))
	})
}
