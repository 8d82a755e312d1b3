package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ramws/internal/application"
	"ramws/internal/application/commands"
	"ramws/internal/domain"
)

const defaultHistoryLimit = 10

// RegisterReadTools adds the tools that never modify either tree.
func RegisterReadTools(s *server.MCPServer, ws *application.Workspace) {
	s.AddTool(statusTool(), statusHandler(ws))
	s.AddTool(diffTool(), diffHandler(ws))
	s.AddTool(historyTool(), historyHandler(ws))
}

// --- status ---

func statusTool() mcp.Tool {
	return mcp.NewTool("status",
		mcp.WithDescription("Report whether the RAM workspace exists, its filesystem capacity, pending changes against the project on disk, the sync policy and the last sync run. Returns JSON."),
	)
}

func statusHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatusCommand(ws).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		data, err := json.MarshalIndent(result.Snapshot, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- diff ---

func diffTool() mcp.Tool {
	return mcp.NewTool("diff",
		mcp.WithDescription("Count files added, changed and deleted in the workspace relative to disk, per source path. Nothing is modified."),
		mcp.WithString("paths",
			mcp.Description("Comma-separated project-relative paths (e.g. src,docs). Omit for every configured source."),
		),
	)
}

func diffHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !ws.Exists() {
			return toolError(fmt.Errorf("workspace not found at %s", ws.Root()))
		}

		mappings := application.SelectMappings(ws.Config(), splitPaths(req.GetString("paths", "")), nil)
		if err := ws.ValidateMappings(mappings); err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		var total domain.DiffSummary
		for _, m := range mappings {
			sum, err := ws.Diff(ctx, m)
			if err != nil {
				fmt.Fprintf(&sb, "%s  error: %v\n", m.Path, err)
				continue
			}
			total = total.Add(sum)
			fmt.Fprintf(&sb, "%s  %s\n", m.Path, formatDiff(sum))
		}
		fmt.Fprintf(&sb, "total  %s\n", formatDiff(total))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recent refresh and syncback runs, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return (default 10)"),
		),
	)
}

func historyHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		journal := ws.Journal()
		if journal == nil {
			return toolError(fmt.Errorf("sync journal is not available"))
		}

		limit := req.GetInt("limit", defaultHistoryLimit)
		if limit <= 0 {
			return toolError(fmt.Errorf("limit must be positive"))
		}

		runs, err := journal.Recent(ctx, limit)
		if err != nil {
			return toolError(err)
		}
		if len(runs) == 0 {
			return mcp.NewToolResultText("No sync runs recorded."), nil
		}

		var sb strings.Builder
		for _, run := range runs {
			sb.WriteString(formatRun(run))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func formatDiff(d domain.DiffSummary) string {
	return fmt.Sprintf("+%d ~%d -%d", d.Added, d.Changed, d.Deleted)
}

func formatRun(run domain.SyncRun) string {
	status := "ok"
	if !run.Succeeded() {
		status = "failed: " + run.Err
	}
	return fmt.Sprintf("#%d  %s  %s  %s  [%s]  %s",
		run.ID,
		run.FinishedAt.Format(time.RFC3339),
		run.Direction,
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		strings.Join(run.Paths, ", "),
		status,
	)
}
