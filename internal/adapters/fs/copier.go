package fs

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var _ ports.TreeCopier = (*Copier)(nil)

// Copier implements ports.TreeCopier on the local filesystem.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// CopyTree copies every file under src into dst, preserving relative layout
// and overwriting existing files. Extension filters match case-insensitively;
// exclude wins over include.
func (c *Copier) CopyTree(src, dst string, include, exclude []string) error {
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "path", src)
	}

	include = lowerAll(include)
	exclude = lowerAll(exclude)

	var copyErr error
	for path := range c.walker.WalkFiles(src, nil) {
		ext := strings.ToLower(filepath.Ext(path))
		if slices.Contains(exclude, ext) {
			continue
		}
		if len(include) > 0 && !slices.Contains(include, ext) {
			continue
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			copyErr = zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
			break
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			copyErr = err
			break
		}
	}
	return copyErr
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target directory"), "path", dst)
	}

	in, err := os.Open(src) //nolint:gosec // path comes from the walked tree
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //nolint:gosec // derived from dst
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	return out.Close()
}

func lowerAll(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.ToLower(e)
	}
	return out
}
