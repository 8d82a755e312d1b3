package ports

import "ramws/internal/domain"

// FilesystemInspector queries metadata of the filesystem backing a path
type FilesystemInspector interface {
	Stat(path string) (*domain.FSStats, error)
}
