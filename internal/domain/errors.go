package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a sync
var (
	ErrConfig        = errors.New("configuration error")
	ErrPathEscape    = errors.New("path escapes its root")
	ErrMirrorFailed  = errors.New("mirror failed")
	ErrFilesystem    = errors.New("filesystem error")
	ErrCapacityQuery = errors.New("capacity query failed")
)

// ConfigError reports unreadable or invalid settings
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// PathEscapeError reports a mapping that resolves outside its expected root
type PathEscapeError struct {
	Root string
	Path string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("path %s escapes root %s", e.Path, e.Root)
}

func (e *PathEscapeError) Is(target error) bool {
	return target == ErrPathEscape
}

// MirrorError reports a failed mirroring process
type MirrorError struct {
	Source     string
	Dest       string
	Diagnostic string // stderr of the mirroring process
	Err        error
}

func (e *MirrorError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("mirror %s -> %s failed: %s", e.Source, e.Dest, e.Diagnostic)
	}
	return fmt.Sprintf("mirror %s -> %s failed: %v", e.Source, e.Dest, e.Err)
}

func (e *MirrorError) Unwrap() error { return e.Err }

func (e *MirrorError) Is(target error) bool {
	return target == ErrMirrorFailed
}

// FilesystemError wraps an OS-level create/remove/stat failure
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}

// CapacityError is returned when filesystem metadata cannot be read.
// Callers degrade status output instead of failing.
type CapacityError struct {
	Path string
	Err  error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("statfs %s: %v", e.Path, e.Err)
}

func (e *CapacityError) Unwrap() error { return e.Err }

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityQuery
}
