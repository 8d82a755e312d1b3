package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"ramws/internal/config"
	"ramws/internal/domain"
)

// NewProject creates a project root with a .git marker and a workspace root
// template under separate temporary directories, and resolves a config with
// the given sources. The workspace root itself does not exist yet.
func NewProject(t *testing.T, sources ...config.SourceSpec) *config.Resolved {
	t.Helper()

	projectRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectRoot, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	wsParent := t.TempDir()

	f := config.Default()
	if len(sources) > 0 {
		f.Sources = sources
	}
	f.Workspace.Root = filepath.Join(wsParent, "${PROJECT}")

	r, err := config.Resolve(f, projectRoot, "tester")
	if err != nil {
		t.Fatalf("failed to resolve config: %v", err)
	}
	r.ConfigPath = filepath.Join(r.ProjectRoot, config.FileName)
	return r
}

// WriteFile creates parent directories and writes content
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test when unreadable
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

// Exists reports whether path exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SourceSpec is shorthand for a filterless source
func SourceSpec(path string, exclude ...string) config.SourceSpec {
	return config.SourceSpec{Path: path, Exclude: exclude}
}

// Mapping is shorthand for a filterless mapping
func Mapping(path string) domain.SourceMapping {
	return domain.SourceMapping{Path: path}
}
