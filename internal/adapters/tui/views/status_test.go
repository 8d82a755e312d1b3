package views

import (
	"strings"
	"testing"
	"time"

	"ramws/internal/domain"
)

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name     string
		snap     domain.StatusSnapshot
		contains []string
	}{
		{
			name: "absent",
			snap: domain.StatusSnapshot{WorkspaceRoot: "/dev/shm/ramws-alex/proj-abc1234"},
			contains: []string{
				"/dev/shm/ramws-alex/proj-abc1234",
				"not created",
			},
		},
		{
			name: "provisioned",
			snap: domain.StatusSnapshot{
				Exists:        true,
				WorkspaceRoot: "/dev/shm/ramws-alex/proj-abc1234",
				ConfigPath:    "/home/alex/proj/.ramws.yml",
				Capacity:      &domain.Capacity{FSType: "tmpfs", Total: 8 << 30, Available: 6 << 30, Used: 2 << 30},
				Diff:          domain.DiffSummary{Added: 1, Changed: 2, Deleted: 3},
				SyncPolicy:    domain.SyncPolicy{OnExit: domain.OnExitAsk, Delete: true},
			},
			contains: []string{
				".ramws.yml",
				"tmpfs",
				"2.0 GiB",
				"+1", "~2", "-3",
				"ask",
			},
		},
		{
			name: "unknown capacity",
			snap: domain.StatusSnapshot{Exists: true, WorkspaceRoot: "/w"},
			contains: []string{
				"unknown",
				"none",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderStatus(tt.snap)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if out := RenderHistory(nil, now); !strings.Contains(out, "No sync runs") {
		t.Errorf("unexpected empty output %q", out)
	}

	runs := []domain.SyncRun{
		{
			Direction:  domain.WorkspaceToOrigin,
			Paths:      []string{"src", "docs"},
			StartedAt:  now.Add(-2*time.Hour - time.Second),
			FinishedAt: now.Add(-2 * time.Hour),
		},
		{
			Direction:  domain.OriginToWorkspace,
			Paths:      []string{"src"},
			StartedAt:  now.Add(-3 * time.Hour),
			FinishedAt: now.Add(-3 * time.Hour),
			Err:        "mirror failed",
		},
	}
	out := RenderHistory(runs, now)
	for _, want := range []string{"syncback", "refresh", "src, docs", "2 hours ago", "mirror failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
