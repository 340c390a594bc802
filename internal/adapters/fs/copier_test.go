package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestCopier_CopyTree(t *testing.T) {
	copier := fs.NewCopier(fs.NewWalker())

	t.Run("preserves relative layout", func(t *testing.T) {
		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "out")
		writeTree(t, src, map[string]string{
			"api.h":          "api",
			"detail/impl.h":  "impl",
			"detail/impl.md": "doc",
		})

		require.NoError(t, copier.CopyTree(src, dst, nil, nil))

		for _, rel := range []string{"api.h", "detail/impl.h", "detail/impl.md"} {
			_, err := os.Stat(filepath.Join(dst, rel))
			assert.NoError(t, err, rel)
		}
	})

	t.Run("exclude filters by extension and wins over include", func(t *testing.T) {
		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "out")
		writeTree(t, src, map[string]string{
			"api.h":    "api",
			"impl.cpp": "impl",
			"util.CXX": "util",
		})

		require.NoError(t, copier.CopyTree(src, dst, []string{".h", ".cpp", ".cxx"}, []string{".cpp", ".cxx"}))

		_, err := os.Stat(filepath.Join(dst, "api.h"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dst, "impl.cpp"))
		assert.True(t, os.IsNotExist(err))
		// Extension matching is case-insensitive.
		_, err = os.Stat(filepath.Join(dst, "util.CXX"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("include filter keeps only listed extensions", func(t *testing.T) {
		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "out")
		writeTree(t, src, map[string]string{
			"api.h":    "api",
			"notes.md": "notes",
		})

		require.NoError(t, copier.CopyTree(src, dst, []string{".h"}, nil))

		_, err := os.Stat(filepath.Join(dst, "api.h"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dst, "notes.md"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("overwrites existing targets", func(t *testing.T) {
		src := t.TempDir()
		dst := t.TempDir()
		writeTree(t, src, map[string]string{"api.h": "new"})
		writeTree(t, dst, map[string]string{"api.h": "old and longer"})

		require.NoError(t, copier.CopyTree(src, dst, nil, nil))

		got, err := os.ReadFile(filepath.Join(dst, "api.h"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("rejects a file as source", func(t *testing.T) {
		src := t.TempDir()
		writeTree(t, src, map[string]string{"api.h": "api"})

		err := copier.CopyTree(filepath.Join(src, "api.h"), t.TempDir(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects a missing source", func(t *testing.T) {
		err := copier.CopyTree(filepath.Join(t.TempDir(), "gone"), t.TempDir(), nil, nil)
		assert.Error(t, err)
	})
}
