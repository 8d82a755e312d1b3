package ports

import (
	"context"

	"ramws/internal/domain"
)

// PathSyncer mirrors one directory tree onto another
type PathSyncer interface {
	// Mirror copies the contents of source into dest. A missing source is an
	// error; a missing dest is created unless opts.DryRun is set.
	Mirror(
		ctx context.Context,
		source, dest string,
		direction domain.Direction,
		opts domain.MirrorOptions,
	) (*domain.ItemizedChanges, error)
}
