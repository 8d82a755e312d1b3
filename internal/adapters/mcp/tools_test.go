package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"ramws/internal/application"
	"ramws/internal/domain"
	"ramws/internal/testutil"
)

func setupWorkspace(t *testing.T) (*application.Workspace, *testutil.MemoryJournal) {
	t.Helper()

	cfg := testutil.NewProject(t, testutil.SourceSpec("src"))
	testutil.WriteFile(t, filepath.Join(cfg.ProjectRoot, "src", "main.go"), "package main")

	journal := &testutil.MemoryJournal{}
	ws := application.NewWorkspace(cfg, &testutil.TreeSyncer{}, application.WithJournal(journal))
	if err := ws.Ensure(context.Background(), false); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	return ws, journal
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestStatusTool(t *testing.T) {
	ws, _ := setupWorkspace(t)
	testutil.WriteFile(t, ws.WorkspacePath("src/new.go"), "package main")

	text, isErr := call(t, statusHandler(ws), nil)
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}

	var snap domain.StatusSnapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		t.Fatalf("status is not JSON: %v\n%s", err, text)
	}
	if !snap.Exists || snap.Diff.Added != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestDiffTool(t *testing.T) {
	ws, _ := setupWorkspace(t)
	testutil.WriteFile(t, ws.WorkspacePath("src/main.go"), "package main // edited")

	text, isErr := call(t, diffHandler(ws), map[string]any{"paths": "src"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "src  +0 ~1 -0") {
		t.Errorf("unexpected diff output:\n%s", text)
	}

	text, isErr = call(t, diffHandler(ws), map[string]any{"paths": "../etc"})
	if !isErr || !strings.Contains(text, "escapes") {
		t.Errorf("expected escape error, got %q", text)
	}
}

func TestSyncbackAndHistoryTools(t *testing.T) {
	ws, journal := setupWorkspace(t)
	testutil.WriteFile(t, ws.WorkspacePath("src/main.go"), "package main // edited")

	text, isErr := call(t, syncbackHandler(ws), nil)
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if got := testutil.ReadFile(t, ws.OriginPath("src/main.go")); got != "package main // edited" {
		t.Errorf("syncback did not reach origin, got %q", got)
	}
	if len(journal.Runs) != 1 {
		t.Fatalf("expected one journal entry, got %d", len(journal.Runs))
	}

	text, isErr = call(t, historyHandler(ws), map[string]any{"limit": 5})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if !strings.Contains(text, "syncback") || !strings.Contains(text, "[src]") {
		t.Errorf("unexpected history:\n%s", text)
	}
}

func TestRefreshTool_MissingWorkspace(t *testing.T) {
	cfg := testutil.NewProject(t)
	ws := application.NewWorkspace(cfg, &testutil.TreeSyncer{})

	text, isErr := call(t, refreshHandler(ws), nil)
	if !isErr || !strings.Contains(text, "workspace not found") {
		t.Errorf("expected missing workspace error, got %q", text)
	}
}

func TestSplitPaths(t *testing.T) {
	got := splitPaths(" src, docs ,,")
	if len(got) != 2 || got[0] != "src" || got[1] != "docs" {
		t.Errorf("unexpected paths %v", got)
	}
	if splitPaths("") != nil {
		t.Error("expected nil for empty input")
	}
}
