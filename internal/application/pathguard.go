package application

import (
	"path/filepath"
	"strings"

	"ramws/internal/config"
	"ramws/internal/domain"
)

// EnsureWithin checks that candidate, after canonicalization, lies inside
// root. Neither path needs to exist: the longest existing prefix is resolved
// through symlinks and the remainder is appended lexically.
func EnsureWithin(root, candidate string) error {
	canonicalRoot, err := config.CanonicalizeLenient(root)
	if err != nil {
		return &domain.FilesystemError{Op: "canonicalize", Path: root, Err: err}
	}
	canonicalCandidate, err := config.CanonicalizeLenient(candidate)
	if err != nil {
		return &domain.FilesystemError{Op: "canonicalize", Path: candidate, Err: err}
	}

	rel, err := filepath.Rel(canonicalRoot, canonicalCandidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return &domain.PathEscapeError{Root: canonicalRoot, Path: canonicalCandidate}
	}
	return nil
}

// ValidateRelative checks that a mapping path joined onto root stays inside root
func ValidateRelative(root, rel string) error {
	if filepath.IsAbs(rel) {
		return &domain.PathEscapeError{Root: root, Path: rel}
	}
	return EnsureWithin(root, filepath.Join(root, rel))
}
