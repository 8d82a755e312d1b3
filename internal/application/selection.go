package application

import (
	"path/filepath"
	"slices"
	"sort"

	"ramws/internal/config"
	"ramws/internal/domain"
)

// SelectMappings picks the paths an explicit sync operates on.
//
// Explicit paths win. Otherwise sources are selected when no role or the
// source role is requested, plus build dirs whose kind was requested; the
// result is sorted and deduplicated. An empty selection falls back to every
// source. A selected path equal to a source mapping keeps its filters.
func SelectMappings(cfg *config.Resolved, only []string, roles []domain.Role) []domain.SourceMapping {
	var paths []string
	if len(only) > 0 {
		paths = only
	} else {
		if len(roles) == 0 || slices.Contains(roles, domain.RoleSource) {
			for _, s := range cfg.Sources {
				paths = append(paths, s.Path)
			}
		}
		for _, b := range cfg.BuildDirs {
			if (b.Kind == domain.BuildDirCache && slices.Contains(roles, domain.RoleCache)) ||
				(b.Kind == domain.BuildDirScratch && slices.Contains(roles, domain.RoleScratch)) {
				paths = append(paths, b.Path)
			}
		}
		sort.Strings(paths)
		paths = slices.Compact(paths)
	}

	if len(paths) == 0 {
		return append([]domain.SourceMapping(nil), cfg.Sources...)
	}

	mappings := make([]domain.SourceMapping, 0, len(paths))
	for _, p := range paths {
		mappings = append(mappings, mappingFor(cfg, p))
	}
	return mappings
}

func mappingFor(cfg *config.Resolved, path string) domain.SourceMapping {
	clean := filepath.Clean(path)
	for _, s := range cfg.Sources {
		if filepath.Clean(s.Path) == clean {
			return s
		}
	}
	return domain.SourceMapping{Path: path}
}
