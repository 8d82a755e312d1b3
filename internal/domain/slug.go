package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// DefaultWorkspaceTemplate places workspaces on the shared-memory mount
const DefaultWorkspaceTemplate = "/dev/shm/ramws-${USER}/${PROJECT}"

// ProjectSlug derives a stable name for a canonical project path:
// the base name plus the first 7 hex digits of its sha1.
func ProjectSlug(canonicalPath string) string {
	name := filepath.Base(canonicalPath)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "project"
	}
	sum := sha1.Sum([]byte(canonicalPath))
	return name + "-" + hex.EncodeToString(sum[:])[:7]
}

// ExpandPlaceholders substitutes ${PROJECT} and, when user is non-empty, ${USER}
func ExpandPlaceholders(template, slug, user string) string {
	value := strings.ReplaceAll(template, "${PROJECT}", slug)
	if user != "" {
		value = strings.ReplaceAll(value, "${USER}", user)
	}
	return value
}
