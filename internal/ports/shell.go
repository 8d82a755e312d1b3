package ports

import "context"

// ShellOptions configures an interactive or one-shot shell session
type ShellOptions struct {
	Shell    string            // Binary to run; empty means $SHELL, then /bin/bash
	Dir      string            // Working directory
	Env      map[string]string // Added to the inherited environment
	Command  []string          // Run via -lc when non-empty, otherwise -i
	NoPrompt bool              // Leave PS1 untouched
}

// ShellRunner starts a shell attached to the current terminal
type ShellRunner interface {
	// Run blocks until the shell exits and returns its exit code
	Run(ctx context.Context, opts ShellOptions) (int, error)
}
