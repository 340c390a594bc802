package fs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChecksumVerifier = (*Verifier)(nil)

// Verifier implements ports.ChecksumVerifier using XXHash.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// ComputeFileHash computes the XXHash of a file's content as a hex string.
func (v *Verifier) ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// VerifyFile compares the file's digest to expected, case-insensitively.
func (v *Verifier) VerifyFile(path, expected string) error {
	actual, err := v.ComputeFileHash(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		mismatch := zerr.With(domain.ErrChecksumMismatch, "path", path)
		mismatch = zerr.With(mismatch, "expected", expected)
		return zerr.With(mismatch, "actual", actual)
	}
	return nil
}
