package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ramws/internal/application"
	"ramws/internal/application/commands"
)

// RegisterWriteTools adds the tools that mirror data between the trees.
func RegisterWriteTools(s *server.MCPServer, ws *application.Workspace) {
	s.AddTool(refreshTool(), refreshHandler(ws))
	s.AddTool(syncbackTool(), syncbackHandler(ws))
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Overwrite workspace paths with the current project state on disk. Unsynced workspace edits in those paths are lost."),
		mcp.WithString("paths",
			mcp.Description("Comma-separated project-relative paths. Omit for every configured source."),
		),
	)
}

func refreshHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !ws.Exists() {
			return toolError(fmt.Errorf("workspace not found at %s", ws.Root()))
		}

		mappings := application.SelectMappings(ws.Config(), splitPaths(req.GetString("paths", "")), nil)
		result, err := commands.NewRefreshCommand(ws, mappings).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- syncback ---

func syncbackTool() mcp.Tool {
	return mcp.NewTool("syncback",
		mcp.WithDescription("Write workspace changes back to the project on disk through a staging directory. Runs without confirmation."),
		mcp.WithString("paths",
			mcp.Description("Comma-separated project-relative paths. Omit for every configured source."),
		),
	)
}

func syncbackHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !ws.Exists() {
			return toolError(fmt.Errorf("workspace not found at %s", ws.Root()))
		}

		mappings := application.SelectMappings(ws.Config(), splitPaths(req.GetString("paths", "")), nil)
		result, err := commands.NewSyncbackCommand(ws, mappings, true).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
