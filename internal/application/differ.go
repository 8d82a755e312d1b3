package application

import (
	"context"

	"ramws/internal/domain"
	"ramws/internal/ports"
)

// Differ measures drift between a workspace subtree and its origin
type Differ struct {
	syncer ports.PathSyncer
}

// NewDiffer creates a Differ on top of a PathSyncer
func NewDiffer(syncer ports.PathSyncer) *Differ {
	return &Differ{syncer: syncer}
}

// Diff runs a workspace->origin dry run and classifies its itemization.
// Neither tree is mutated.
func (d *Differ) Diff(
	ctx context.Context,
	workspacePath, originPath string,
	opts domain.MirrorOptions,
) (domain.DiffSummary, error) {
	opts.DryRun = true
	opts.Itemize = true

	changes, err := d.syncer.Mirror(ctx, workspacePath, originPath, domain.WorkspaceToOrigin, opts)
	if err != nil {
		return domain.DiffSummary{}, err
	}
	return domain.Summarize(changes), nil
}
