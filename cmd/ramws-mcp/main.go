package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "ramws/internal/adapters/mcp"
	"ramws/internal/adapters/rsync"
	"ramws/internal/adapters/sqlite"
	"ramws/internal/adapters/statfs"
	"ramws/internal/application"
	"ramws/internal/config"
	"ramws/internal/logging"
)

func main() {
	chdirFlag := flag.String("C", "", "project directory (default: working directory)")
	configFlag := flag.String("config", "", "path to .ramws.yml (default: discovered from the project root)")
	verboseFlag := flag.Bool("v", false, "debug logging on stderr")
	flag.Parse()

	verbose := 0
	if *verboseFlag {
		verbose = 1
	}
	logger := logging.New(logging.Options{Verbose: verbose, Writer: os.Stderr})

	start := *chdirFlag
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("ramws-mcp: %v", err)
		}
		start = wd
	}
	root, err := config.FindProjectRoot(start)
	if err != nil {
		log.Fatalf("ramws-mcp: %v", err)
	}
	path := *configFlag
	if path == "" {
		if path, err = config.Discover(root); err != nil {
			log.Fatalf("ramws-mcp: %v", err)
		}
	}
	cfg, err := config.Load(path, root)
	if err != nil {
		log.Fatalf("ramws-mcp: %v", err)
	}

	opts := []application.Option{
		application.WithInspector(statfs.NewInspector()),
		application.WithLogger(logger),
	}
	journal, err := sqlite.Open(sqlite.DefaultPath(cfg.Slug))
	if err != nil {
		logger.Warn("sync journal unavailable", "error", err)
	} else {
		opts = append(opts, application.WithJournal(journal))
	}
	ws := application.NewWorkspace(cfg, rsync.NewSyncer(rsync.WithLogger(logger)), opts...)

	mcpServer := server.NewMCPServer(
		"ramws-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ws)
	mcpadapter.RegisterWriteTools(mcpServer, ws)

	err = server.ServeStdio(mcpServer)
	if journal != nil {
		journal.Close()
	}
	if err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
