package commands

import (
	"context"
	"path/filepath"
	"testing"

	"ramws/internal/application"
	"ramws/internal/config"
	"ramws/internal/testutil"
)

type fixture struct {
	cfg     *config.Resolved
	syncer  *testutil.TreeSyncer
	journal *testutil.MemoryJournal
	ws      *application.Workspace
}

// setupWorkspace creates a project with src/main.go and src/util.go and a
// provisioned workspace mirroring it
func setupWorkspace(t *testing.T) *fixture {
	t.Helper()

	cfg := testutil.NewProject(t, testutil.SourceSpec("src", "*.log"))
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "main.go"), "package main")
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "util.go"), "package main // util")

	f := &fixture{
		cfg:     cfg,
		syncer:  &testutil.TreeSyncer{},
		journal: &testutil.MemoryJournal{},
	}
	f.ws = application.NewWorkspace(cfg, f.syncer, application.WithJournal(f.journal))
	if err := f.ws.Ensure(context.Background(), false); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	f.syncer.Calls = nil
	return f
}

func (f *fixture) origin(rel ...string) string {
	return filepath.Join(append([]string{f.cfg.ProjectRoot}, rel...)...)
}

func (f *fixture) workspace(rel ...string) string {
	return filepath.Join(append([]string{f.cfg.WorkspaceRoot}, rel...)...)
}
