package commands

import (
	"context"
	"fmt"
	"strconv"

	"ramws/internal/application"
	"ramws/internal/config"
	"ramws/internal/ports"
)

// Session environment variables exported to workspace shells
const (
	EnvActive     = "RAMWS_ACTIVE"
	EnvLevel      = "RAMWS_LEVEL"
	EnvOriginRoot = "RAMWS_ORIG_ROOT"
	EnvWorkRoot   = "RAMWS_WS_ROOT"
)

// ShellResult contains the outcome of a shell session
type ShellResult struct {
	ExitCode int
	Exit     *ExitResult
	Message  string
}

// ShellCommand provisions the workspace, runs a shell inside it and applies
// the on_exit policy once the shell returns
type ShellCommand struct {
	ws             *application.Workspace
	runner         ports.ShellRunner
	confirmer      ports.Confirmer
	getenv         func(string) string
	Shell          string
	NoPrompt       bool
	Command        []string
	Noninteractive bool
}

// NewShellCommand creates a new ShellCommand. getenv supplies the parent's
// RAMWS_LEVEL.
func NewShellCommand(
	ws *application.Workspace,
	runner ports.ShellRunner,
	confirmer ports.Confirmer,
	getenv func(string) string,
) *ShellCommand {
	return &ShellCommand{
		ws:        ws,
		runner:    runner,
		confirmer: confirmer,
		getenv:    getenv,
	}
}

// Validate checks the configured sources
func (c *ShellCommand) Validate() error {
	return c.ws.ValidateMappings(c.ws.Config().Sources)
}

// Execute runs the session. The exit policy runs even when the shell exits
// non-zero; its failure is returned alongside the shell's exit code.
func (c *ShellCommand) Execute(ctx context.Context) (*ShellResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.ws.Ensure(ctx, false); err != nil {
		return nil, err
	}

	cfg := c.ws.Config()
	c.ws.Logger().Info("launching shell", "root", cfg.WorkspaceRoot)
	code, err := c.runner.Run(ctx, ports.ShellOptions{
		Shell:    c.Shell,
		Dir:      cfg.WorkspaceRoot,
		Env:      SessionEnv(cfg, c.getenv(EnvLevel)),
		Command:  c.Command,
		NoPrompt: c.NoPrompt,
	})
	if err != nil {
		return nil, err
	}

	exit, err := NewExitCommand(c.ws, c.confirmer, c.Noninteractive).Execute(ctx)
	result := &ShellResult{
		ExitCode: code,
		Exit:     exit,
		Message:  fmt.Sprintf("Shell exited with status %d", code),
	}
	if err != nil {
		return result, fmt.Errorf("on-exit sync failed: %w", err)
	}
	return result, nil
}

// SessionEnv returns the variables a workspace shell runs with. parentLevel
// is the enclosing session's RAMWS_LEVEL; anything unparsable counts as zero.
func SessionEnv(cfg *config.Resolved, parentLevel string) map[string]string {
	level := 0
	if n, err := strconv.Atoi(parentLevel); err == nil && n > 0 {
		level = n
	}
	return map[string]string{
		EnvActive:        "1",
		EnvLevel:         strconv.Itoa(level + 1),
		EnvOriginRoot:    cfg.ProjectRoot,
		EnvWorkRoot:      cfg.WorkspaceRoot,
		config.EnvConfig: cfg.ConfigPath,
	}
}
