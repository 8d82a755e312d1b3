//go:build linux

package statfs

import (
	"golang.org/x/sys/unix"

	"ramws/internal/domain"
	"ramws/internal/ports"
)

// Inspector implements ports.FilesystemInspector with statfs(2)
type Inspector struct{}

// Ensure Inspector implements FilesystemInspector
var _ ports.FilesystemInspector = (*Inspector)(nil)

// NewInspector creates a new statfs inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Stat returns type and capacity of the filesystem holding path
func (i *Inspector) Stat(path string) (*domain.FSStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, &domain.CapacityError{Path: path, Err: err}
	}
	bsize := uint64(st.Bsize)
	return &domain.FSStats{
		TypeCode:  int64(st.Type),
		Total:     st.Blocks * bsize,
		Free:      st.Bfree * bsize,
		Available: st.Bavail * bsize,
	}, nil
}
