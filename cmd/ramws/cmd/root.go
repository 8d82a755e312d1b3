package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ramws/internal/adapters/rsync"
	"ramws/internal/adapters/sqlite"
	"ramws/internal/adapters/statfs"
	"ramws/internal/application"
	"ramws/internal/config"
	"ramws/internal/logging"
	"ramws/internal/ports"
)

var (
	chdir      string
	configPath string
	jsonOutput bool
	verbose    int
	quiet      int

	logger    *slog.Logger
	workspace *application.Workspace
	journal   ports.SyncJournal
)

// commands that run without a resolved configuration
var configless = map[string]bool{
	"help":             true,
	"completion":       true,
	"init":             true,
	"__complete":       true,
	"__completeNoDesc": true,
}

var rootCmd = &cobra.Command{
	Use:   "ramws",
	Short: "Per-project RAM workspace orchestrator",
	Long: `ramws keeps a mirror of a project on a memory-backed filesystem.

Work happens in the fast copy; changes are synced back to the project on
disk on demand or when the workspace shell exits. Configuration lives in
.ramws.yml at the project root (see ramws init).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(logging.Options{Verbose: verbose, Quiet: quiet})

		if configless[cmd.Name()] {
			return nil
		}
		return openWorkspace()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		closeJournal()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	closeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ramws:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .ramws.yml (default: discovered from the project root)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print machine-readable JSON where supported")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().CountVarP(&quiet, "quiet", "q", "decrease log verbosity")
}

// projectRoot resolves the project root from --chdir or the working directory
func projectRoot() (string, error) {
	start := chdir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to read working directory: %w", err)
		}
		start = wd
	}
	return config.FindProjectRoot(start)
}

func openWorkspace() error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	path := configPath
	if path == "" {
		if path, err = config.Discover(root); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path, root)
	if err != nil {
		return err
	}

	opts := []application.Option{
		application.WithInspector(statfs.NewInspector()),
		application.WithLogger(logger),
	}
	if j, err := sqlite.Open(sqlite.DefaultPath(cfg.Slug)); err != nil {
		logger.Warn("sync journal unavailable", "error", err)
	} else {
		journal = j
		opts = append(opts, application.WithJournal(j))
	}

	workspace = application.NewWorkspace(cfg, rsync.NewSyncer(rsync.WithLogger(logger)), opts...)
	logger.Debug("configuration loaded",
		"config", cfg.ConfigPath,
		"project_root", cfg.ProjectRoot,
		"workspace_root", cfg.WorkspaceRoot,
	)
	return nil
}

func closeJournal() {
	if journal == nil {
		return
	}
	if err := journal.Close(); err != nil && logger != nil {
		logger.Warn("failed to close sync journal", "error", err)
	}
	journal = nil
}

// GetWorkspace returns the initialized workspace
func GetWorkspace() (*application.Workspace, error) {
	if workspace == nil {
		return nil, errors.New("workspace not initialized")
	}
	return workspace, nil
}
