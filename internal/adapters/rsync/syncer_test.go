package rsync

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"ramws/internal/domain"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		opts domain.MirrorOptions
		want []string
	}{
		{
			name: "plain copy",
			opts: domain.MirrorOptions{},
			want: []string{"-a", "/src/", "/dst"},
		},
		{
			name: "all flags",
			opts: domain.MirrorOptions{Delete: true, DryRun: true, Itemize: true},
			want: []string{"-a", "--delete", "--dry-run", "--itemize-changes", "/src/", "/dst"},
		},
		{
			name: "filters keep caller order, includes first",
			opts: domain.MirrorOptions{
				Include: []string{"keep/**", "*.go"},
				Exclude: []string{"*", ".git/**"},
			},
			want: []string{
				"-a",
				"--include=keep/**", "--include=*.go",
				"--exclude=*", "--exclude=.git/**",
				"/src/", "/dst",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs("/src", "/dst", tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildArgs_KeepsExistingTrailingSlash(t *testing.T) {
	got := BuildArgs("/src/", "/dst", domain.MirrorOptions{})
	if got[1] != "/src/" {
		t.Errorf("expected single trailing slash, got %q", got[1])
	}
}

func TestParseLines(t *testing.T) {
	out := []byte(">f+++++++++ a.txt\n\n*deleting b.txt\n")
	got := parseLines(out)
	want := []string{">f+++++++++ a.txt", "*deleting b.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseLines() = %v, want %v", got, want)
	}
}

// fakeRsync writes an executable script standing in for rsync
func fakeRsync(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rsync")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("failed to write fake rsync: %v", err)
	}
	return path
}

func TestMirror_MissingSource(t *testing.T) {
	s := NewSyncer(WithBinary(fakeRsync(t, "exit 0")))
	dest := filepath.Join(t.TempDir(), "dest")

	_, err := s.Mirror(context.Background(), "/nonexistent/source", dest, domain.OriginToWorkspace, domain.MirrorOptions{})
	if !errors.Is(err, domain.ErrFilesystem) {
		t.Fatalf("expected ErrFilesystem, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination should not be created when source is missing")
	}
}

func TestMirror_CreatesDestination(t *testing.T) {
	s := NewSyncer(WithBinary(fakeRsync(t, "exit 0")))
	dest := filepath.Join(t.TempDir(), "a", "b")

	if _, err := s.Mirror(context.Background(), t.TempDir(), dest, domain.OriginToWorkspace, domain.MirrorOptions{}); err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Errorf("expected destination directory to exist: %v", err)
	}
}

func TestMirror_DryRunDoesNotCreateDestination(t *testing.T) {
	s := NewSyncer(WithBinary(fakeRsync(t, "exit 0")))
	dest := filepath.Join(t.TempDir(), "missing")

	opts := domain.MirrorOptions{DryRun: true, Itemize: true}
	if _, err := s.Mirror(context.Background(), t.TempDir(), dest, domain.WorkspaceToOrigin, opts); err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dry run must not create the destination")
	}
}

func TestMirror_FailureCarriesDiagnostic(t *testing.T) {
	s := NewSyncer(WithBinary(fakeRsync(t, "echo 'rsync: permission denied' >&2\nexit 23")))

	_, err := s.Mirror(context.Background(), t.TempDir(), t.TempDir(), domain.OriginToWorkspace, domain.MirrorOptions{})
	if !errors.Is(err, domain.ErrMirrorFailed) {
		t.Fatalf("expected ErrMirrorFailed, got %v", err)
	}

	var mirrorErr *domain.MirrorError
	if !errors.As(err, &mirrorErr) {
		t.Fatalf("expected MirrorError, got %T", err)
	}
	if mirrorErr.Diagnostic != "rsync: permission denied" {
		t.Errorf("unexpected diagnostic %q", mirrorErr.Diagnostic)
	}
}

func TestMirror_ItemizeParsesStdout(t *testing.T) {
	s := NewSyncer(WithBinary(fakeRsync(t, "printf '>f+++++++++ new.txt\\n>fcstpog foo.txt\\n*deleting old.txt\\n'")))

	opts := domain.MirrorOptions{DryRun: true, Itemize: true}
	changes, err := s.Mirror(context.Background(), t.TempDir(), t.TempDir(), domain.WorkspaceToOrigin, opts)
	if err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}
	if len(changes.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", changes.Lines)
	}
	if got := domain.Summarize(changes); got != (domain.DiffSummary{Added: 1, Changed: 1, Deleted: 1}) {
		t.Errorf("unexpected summary %+v", got)
	}
}

func requireRsync(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("rsync"); err != nil {
		t.Skip("rsync not installed")
	}
}

func TestMirror_RealRsync(t *testing.T) {
	requireRsync(t)

	src := t.TempDir()
	dest := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "keep"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "keep", "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "skip.log"), []byte("log"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "stale.txt"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewSyncer()
	opts := domain.MirrorOptions{Delete: true, Exclude: []string{"*.log"}}
	if _, err := s.Mirror(context.Background(), src, dest, domain.OriginToWorkspace, opts); err != nil {
		t.Fatalf("Mirror failed: %v", err)
	}

	if content, err := os.ReadFile(filepath.Join(dest, "keep", "a.txt")); err != nil || string(content) != "a" {
		t.Errorf("expected keep/a.txt to be copied, got %q, %v", content, err)
	}
	if _, err := os.Stat(filepath.Join(dest, "skip.log")); !os.IsNotExist(err) {
		t.Error("excluded file was copied")
	}
	if _, err := os.Stat(filepath.Join(dest, "stale.txt")); !os.IsNotExist(err) {
		t.Error("stale file was not deleted")
	}

	changes, err := s.Mirror(context.Background(), src, dest, domain.WorkspaceToOrigin,
		domain.MirrorOptions{Delete: true, DryRun: true, Itemize: true, Exclude: []string{"*.log"}})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if sum := domain.Summarize(changes); !sum.IsZero() {
		t.Errorf("expected no pending changes after mirror, got %+v (%s)", sum, strings.Join(changes.Lines, "; "))
	}
}
