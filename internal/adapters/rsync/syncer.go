package rsync

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"ramws/internal/domain"
	"ramws/internal/logging"
	"ramws/internal/ports"
)

// Syncer implements ports.PathSyncer by running rsync
type Syncer struct {
	binary string
	logger *slog.Logger
}

// Ensure Syncer implements PathSyncer
var _ ports.PathSyncer = (*Syncer)(nil)

// Option configures the Syncer
type Option func(*Syncer)

// WithBinary sets the rsync executable to run
func WithBinary(binary string) Option {
	return func(s *Syncer) {
		s.binary = binary
	}
}

// WithLogger sets the diagnostics sink
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger
	}
}

// NewSyncer creates a new rsync-backed syncer
func NewSyncer(opts ...Option) *Syncer {
	s := &Syncer{
		binary: "rsync",
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mirror copies the contents of source into dest
func (s *Syncer) Mirror(
	ctx context.Context,
	source, dest string,
	direction domain.Direction,
	opts domain.MirrorOptions,
) (*domain.ItemizedChanges, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, &domain.FilesystemError{Op: "stat source", Path: source, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.FilesystemError{Op: "stat source", Path: source, Err: errors.New("not a directory")}
	}

	if !opts.DryRun {
		if err := os.MkdirAll(dest, 0755); err != nil {
			return nil, &domain.FilesystemError{Op: "create destination", Path: dest, Err: err}
		}
	}

	args := BuildArgs(source, dest, opts)
	s.logger.Debug("running rsync",
		"direction", direction.String(),
		"source", source,
		"dest", dest,
		"dry_run", opts.DryRun,
		"args", args,
	)

	cmd := exec.CommandContext(ctx, s.binary, args...)
	output, err := cmd.Output()
	if err != nil {
		mirrorErr := &domain.MirrorError{Source: source, Dest: dest, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			mirrorErr.Diagnostic = strings.TrimSpace(string(exitErr.Stderr))
			if mirrorErr.Diagnostic == "" {
				mirrorErr.Diagnostic = fmt.Sprintf("rsync exited with status %d", exitErr.ExitCode())
			}
		}
		return nil, mirrorErr
	}

	changes := &domain.ItemizedChanges{}
	if opts.Itemize {
		changes.Lines = parseLines(output)
	}
	return changes, nil
}

// BuildArgs renders the rsync argument vector for a mirror. The source gets a
// trailing slash so its contents, not the directory itself, land in dest.
func BuildArgs(source, dest string, opts domain.MirrorOptions) []string {
	args := []string{"-a"}
	if opts.Delete {
		args = append(args, "--delete")
	}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.Itemize {
		args = append(args, "--itemize-changes")
	}
	for _, inc := range opts.Include {
		args = append(args, "--include="+inc)
	}
	for _, exc := range opts.Exclude {
		args = append(args, "--exclude="+exc)
	}
	return append(args, withTrailingSlash(source), dest)
}

func withTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

func parseLines(output []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
