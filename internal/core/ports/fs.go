package ports

//go:generate go run go.uber.org/mock/mockgen -source=fs.go -destination=mocks/mock_fs.go -package=mocks

// TreeCopier copies a directory tree with extension filters.
type TreeCopier interface {
	// CopyTree copies every file under src into dst, recursively, preserving
	// relative layout and overwriting existing files. When include is
	// non-empty only files with those extensions are copied; files with an
	// extension in exclude are always skipped. Extensions carry the leading
	// dot and match case-insensitively.
	CopyTree(src, dst string, include, exclude []string) error
}

// ChecksumVerifier compares a file's content digest against an expected value.
type ChecksumVerifier interface {
	// VerifyFile computes the file's digest and compares it to expected,
	// a hex string matched case-insensitively. A mismatch yields
	// domain.ErrChecksumMismatch.
	VerifyFile(path, expected string) error
}
