package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func TestVerifier_ComputeFileHash(t *testing.T) {
	verifier := fs.NewVerifier()
	path := filepath.Join(t.TempDir(), "artifact.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	hash, err := verifier.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Len(t, hash, 16)

	again, err := verifier.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	t.Run("content change changes the digest", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("payload2"), 0o644))
		changed, err := verifier.ComputeFileHash(path)
		require.NoError(t, err)
		assert.NotEqual(t, hash, changed)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := verifier.ComputeFileHash(filepath.Join(t.TempDir(), "gone"))
		assert.Error(t, err)
	})
}

func TestVerifier_VerifyFile(t *testing.T) {
	verifier := fs.NewVerifier()
	path := filepath.Join(t.TempDir(), "artifact.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	hash, err := verifier.ComputeFileHash(path)
	require.NoError(t, err)

	require.NoError(t, verifier.VerifyFile(path, hash))

	t.Run("comparison is case-insensitive", func(t *testing.T) {
		require.NoError(t, verifier.VerifyFile(path, strings.ToUpper(hash)))
	})

	t.Run("mismatch is reported", func(t *testing.T) {
		err := verifier.VerifyFile(path, "0000000000000000")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
	})
}
