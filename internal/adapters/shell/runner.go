package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"ramws/internal/ports"
)

// DefaultShell is used when neither the options nor $SHELL name one
const DefaultShell = "/bin/bash"

// PromptMarker prefixes PS1 inside an interactive workspace session
const PromptMarker = "(ramws)"

// Runner implements ports.ShellRunner
type Runner struct {
	getenv func(string) string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Ensure Runner implements ShellRunner
var _ ports.ShellRunner = (*Runner)(nil)

// Option configures a Runner
type Option func(*Runner)

// WithEnvLookup replaces os.Getenv for resolving $SHELL and $PS1
func WithEnvLookup(getenv func(string) string) Option {
	return func(r *Runner) {
		r.getenv = getenv
	}
}

// WithIO attaches the shell to the given streams instead of the terminal
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a runner attached to the process's standard streams
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		getenv: os.Getenv,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the shell and waits for it. A non-zero exit is reported as a
// code, not an error; errors mean the shell could not be started.
func (r *Runner) Run(ctx context.Context, opts ports.ShellOptions) (int, error) {
	cmd := r.Command(ctx, opts)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("failed to launch shell %s: %w", cmd.Path, err)
}

// Command builds the exec.Cmd for a session without starting it
func (r *Runner) Command(ctx context.Context, opts ports.ShellOptions) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.findShell(opts.Shell), r.args(opts)...)
	cmd.Dir = opts.Dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	env := make(map[string]string, len(opts.Env)+1)
	for k, v := range opts.Env {
		env[k] = v
	}
	if !opts.NoPrompt && len(opts.Command) == 0 {
		env["PS1"] = r.prompt()
	}
	cmd.Env = append(os.Environ(), flatten(env)...)

	return cmd
}

func (r *Runner) args(opts ports.ShellOptions) []string {
	if len(opts.Command) == 0 {
		return []string{"-i"}
	}
	return []string{"-lc", strings.Join(opts.Command, " ")}
}

// findShell returns the shell to use
func (r *Runner) findShell(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if sh := r.getenv("SHELL"); sh != "" {
		return sh
	}
	return DefaultShell
}

func (r *Runner) prompt() string {
	if ps1 := r.getenv("PS1"); ps1 != "" {
		return PromptMarker + " " + ps1
	}
	return PromptMarker + ` \u$ `
}

// flatten renders env as sorted KEY=VALUE pairs
func flatten(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
