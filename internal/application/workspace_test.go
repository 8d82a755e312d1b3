package application

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"ramws/internal/adapters/rsync"
	"ramws/internal/config"
	"ramws/internal/domain"
	"ramws/internal/ports"
	"ramws/internal/testutil"
)

func TestWorkspace_EnsureCreatesAndPopulates(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("src", "*.log"))
	cfg.BuildDirs = []domain.BuildDirMapping{{Path: "build", Kind: domain.BuildDirScratch}}
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "main.go"), "package main")
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "debug.log"), "noise")

	syncer := &testutil.TreeSyncer{}
	ws := NewWorkspace(cfg, syncer)

	if ws.Exists() {
		t.Fatal("workspace should not exist before Ensure")
	}
	if err := ws.Ensure(context.Background(), false); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if !ws.Exists() {
		t.Fatal("workspace should exist after Ensure")
	}
	if got := testutil.ReadFile(t, filepath.Join(cfg.WorkspaceRoot, "src", "main.go")); got != "package main" {
		t.Errorf("unexpected content %q", got)
	}
	if testutil.Exists(filepath.Join(cfg.WorkspaceRoot, "src", "debug.log")) {
		t.Error("excluded file was copied")
	}
	if !testutil.Exists(filepath.Join(cfg.WorkspaceRoot, "build")) {
		t.Error("build dir was not created")
	}

	call := syncer.Calls[0]
	if call.Direction != domain.OriginToWorkspace || call.Opts.DryRun {
		t.Errorf("expected non-dry-run origin->workspace mirror, got %+v", call)
	}
	if !call.Opts.Delete {
		t.Error("expected global delete policy to be passed")
	}
}

func TestWorkspace_EnsureSourcesOnlySkipsBuildDirs(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("src"))
	cfg.BuildDirs = []domain.BuildDirMapping{{Path: "out", Kind: domain.BuildDirCache}}
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "a.txt"), "a")

	ws := NewWorkspace(cfg, &testutil.TreeSyncer{})
	if err := ws.Ensure(context.Background(), true); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if testutil.Exists(filepath.Join(cfg.WorkspaceRoot, "out")) {
		t.Error("build dir should not be created with sourcesOnly")
	}
}

func TestWorkspace_EnsureIdempotent(t *testing.T) {
	cfg := testutil.NewProject(t)
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "a", "b.txt"), "b")
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "node_modules", "x.js"), "x")

	ws := NewWorkspace(cfg, &testutil.TreeSyncer{})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ws.Ensure(ctx, false); err != nil {
			t.Fatalf("Ensure #%d failed: %v", i+1, err)
		}
	}

	for _, m := range cfg.Sources {
		sum, err := ws.Diff(ctx, m)
		if err != nil {
			t.Fatalf("Diff failed: %v", err)
		}
		if !sum.IsZero() {
			t.Errorf("expected zero diff after repeated Ensure, got %+v", sum)
		}
	}
}

func TestWorkspace_EnsureRejectsEscapeBeforeMirroring(t *testing.T) {
	cfg := testutil.NewProject(t,
		testutil.SourceSpec("src"),
		testutil.SourceSpec("../outside"),
	)
	syncer := &testutil.TreeSyncer{}

	err := NewWorkspace(cfg, syncer).Ensure(context.Background(), false)
	if !errors.Is(err, domain.ErrPathEscape) {
		t.Fatalf("expected ErrPathEscape, got %v", err)
	}
	if syncer.CallCount() != 0 {
		t.Errorf("expected no mirror calls, got %d", syncer.CallCount())
	}
	if testutil.Exists(cfg.WorkspaceRoot) {
		t.Error("workspace should not be created when a mapping escapes")
	}
}

func TestWorkspace_EnsureSurfacesMissingSource(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("absent"))

	err := NewWorkspace(cfg, &testutil.TreeSyncer{}).Ensure(context.Background(), false)
	if !errors.Is(err, domain.ErrFilesystem) {
		t.Errorf("expected ErrFilesystem for missing source, got %v", err)
	}
}

func TestWorkspace_EnsureWarnsOffTmpfs(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("src"))
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "a"), "a")

	inspector := &testutil.StaticInspector{Stats: domain.FSStats{TypeCode: 0xef53}}
	ws := NewWorkspace(cfg, &testutil.TreeSyncer{}, WithInspector(inspector))
	if err := ws.Ensure(context.Background(), false); err != nil {
		t.Fatalf("a non-tmpfs workspace must not be an error: %v", err)
	}
}

func TestWorkspace_Delete(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("src"))
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "a"), "a")
	ws := NewWorkspace(cfg, &testutil.TreeSyncer{})

	if err := ws.Delete(); err != nil {
		t.Fatalf("Delete of absent workspace should be a no-op: %v", err)
	}
	if err := ws.Ensure(context.Background(), false); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if err := ws.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ws.Exists() {
		t.Error("workspace still exists after Delete")
	}
	if !testutil.Exists(filepath.Join(cfg.ProjectRoot, "src", "a")) {
		t.Error("Delete touched the origin")
	}
}

func TestWorkspace_RefusesOverlappingRoots(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec("src"))
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "a"), "a")
	cfg.WorkspaceRoot = cfg.ProjectRoot
	syncer := &testutil.TreeSyncer{}
	ws := NewWorkspace(cfg, syncer)

	if err := ws.Delete(); !errors.Is(err, domain.ErrConfig) {
		t.Errorf("expected ErrConfig from Delete, got %v", err)
	}
	if err := ws.Ensure(context.Background(), false); !errors.Is(err, domain.ErrConfig) {
		t.Errorf("expected ErrConfig from Ensure, got %v", err)
	}
	if syncer.CallCount() != 0 {
		t.Errorf("expected no mirror calls, got %d", syncer.CallCount())
	}
	if !testutil.Exists(filepath.Join(cfg.ProjectRoot, "src", "a")) {
		t.Error("project content was removed")
	}
}

func TestWorkspace_BuildDirsSurviveDeletingMirror(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec(".", "build/**"))
	cfg.BuildDirs = []domain.BuildDirMapping{{Path: "build", Kind: domain.BuildDirScratch}}
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "main.go"), "package main")

	ws := NewWorkspace(cfg, &testutil.TreeSyncer{})
	ctx := context.Background()
	if err := ws.Ensure(ctx, false); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if !testutil.Exists(filepath.Join(cfg.WorkspaceRoot, "build")) {
		t.Fatal("build dir removed during population")
	}

	testutil.WriteFile(t, filepath.Join(cfg.WorkspaceRoot, "build", "out.o"), "obj")
	if err := ws.Ensure(ctx, true); err != nil {
		t.Fatalf("re-sync failed: %v", err)
	}
	if !testutil.Exists(filepath.Join(cfg.WorkspaceRoot, "build", "out.o")) {
		t.Error("build output removed by a re-sync of '.'")
	}

	opts := ws.MirrorOptions(cfg.Sources[0])
	if opts.Exclude[len(opts.Exclude)-1] != "/build/" {
		t.Errorf("expected anchored build exclude, got %v", opts.Exclude)
	}
	if own := ws.MirrorOptions(domain.SourceMapping{Path: "build"}); len(own.Exclude) != 0 {
		t.Errorf("a build dir mapping must not exclude itself, got %v", own.Exclude)
	}
}

func TestWorkspace_MirrorOptionsExcludeStaging(t *testing.T) {
	cfg := testutil.NewProject(t, testutil.SourceSpec(".", ".git/**"), testutil.SourceSpec("src"))
	ws := NewWorkspace(cfg, &testutil.TreeSyncer{})

	root := ws.MirrorOptions(cfg.Sources[0])
	if len(root.Exclude) != 2 || root.Exclude[1] != "/"+StagingDirName+"/" {
		t.Errorf("expected anchored staging exclude for '.', got %v", root.Exclude)
	}
	if len(cfg.Sources[0].Exclude) != 1 {
		t.Error("MirrorOptions mutated the mapping's exclude list")
	}

	sub := ws.MirrorOptions(cfg.Sources[1])
	if len(sub.Exclude) != 0 {
		t.Errorf("staging is not inside src, expected no excludes, got %v", sub.Exclude)
	}
}

func TestWorkspace_CapacityWithoutInspector(t *testing.T) {
	ws := NewWorkspace(testutil.NewProject(t), &testutil.TreeSyncer{})
	if _, err := ws.Capacity(); !errors.Is(err, domain.ErrCapacityQuery) {
		t.Errorf("expected ErrCapacityQuery, got %v", err)
	}
}

func TestWorkspace_RecordRunIgnoresJournalFailure(t *testing.T) {
	journal := &testutil.MemoryJournal{Err: errors.New("disk full")}
	ws := NewWorkspace(testutil.NewProject(t), &testutil.TreeSyncer{}, WithJournal(journal))

	// Must not panic or propagate
	ws.RecordRun(context.Background(), domain.WorkspaceToOrigin, nil, time.Time{}, nil)
}

func TestWorkspace_RecordRunPrunesJournal(t *testing.T) {
	tests := []struct {
		name      string
		retention int
		want      int
	}{
		{name: "bounded", retention: 2, want: 2},
		{name: "unbounded", retention: 0, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &testutil.MemoryJournal{}
			ws := NewWorkspace(testutil.NewProject(t), &testutil.TreeSyncer{},
				WithJournal(journal), WithRunRetention(tt.retention))

			for i := 0; i < 4; i++ {
				ws.RecordRun(context.Background(), domain.OriginToWorkspace, nil, time.Now(), nil)
			}
			if len(journal.Runs) != tt.want {
				t.Errorf("expected %d runs kept, got %d", tt.want, len(journal.Runs))
			}
			if tt.retention > 0 && journal.Runs[len(journal.Runs)-1].ID != 4 {
				t.Errorf("expected the newest run to be kept, got %+v", journal.Runs)
			}
		})
	}
}

func TestWorkspace_EnsureIdempotentWithRsync(t *testing.T) {
	if _, err := exec.LookPath("rsync"); err != nil {
		t.Skip("rsync not installed")
	}

	cfg := testutil.NewProject(t, config.DefaultSources()...)
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "a", "b.txt"), "b")
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, ".git", "HEAD"), "ref: refs/heads/main")

	var syncer ports.PathSyncer = rsync.NewSyncer()
	ws := NewWorkspace(cfg, syncer)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ws.Ensure(ctx, false); err != nil {
			t.Fatalf("Ensure #%d failed: %v", i+1, err)
		}
	}

	sum, err := ws.Diff(ctx, cfg.Sources[0])
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if !sum.IsZero() {
		t.Errorf("expected zero diff, got %+v", sum)
	}
	if testutil.Exists(filepath.Join(cfg.WorkspaceRoot, ".git", "HEAD")) {
		t.Error(".git contents should be excluded from the workspace")
	}
}
