//go:build !linux

package statfs

import (
	"errors"

	"ramws/internal/domain"
	"ramws/internal/ports"
)

// Inspector reports capacity as unavailable outside Linux
type Inspector struct{}

var _ ports.FilesystemInspector = (*Inspector)(nil)

// NewInspector creates a new inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Stat always fails with a CapacityError
func (i *Inspector) Stat(path string) (*domain.FSStats, error) {
	return nil, &domain.CapacityError{Path: path, Err: errors.New("statfs is only supported on linux")}
}
