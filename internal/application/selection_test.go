package application

import (
	"testing"

	"ramws/internal/config"
	"ramws/internal/domain"
)

func selectionConfig() *config.Resolved {
	return &config.Resolved{
		Sources: []domain.SourceMapping{
			{Path: "src", Exclude: []string{"*.tmp"}},
			{Path: "docs"},
		},
		BuildDirs: []domain.BuildDirMapping{
			{Path: "build", Kind: domain.BuildDirScratch},
			{Path: ".cache", Kind: domain.BuildDirCache},
		},
	}
}

func paths(mappings []domain.SourceMapping) []string {
	var out []string
	for _, m := range mappings {
		out = append(out, m.Path)
	}
	return out
}

func TestSelectMappings(t *testing.T) {
	tests := []struct {
		name  string
		only  []string
		roles []domain.Role
		want  []string
	}{
		{
			name: "default is every source, sorted",
			want: []string{"docs", "src"},
		},
		{
			name:  "cache role only",
			roles: []domain.Role{domain.RoleCache},
			want:  []string{".cache"},
		},
		{
			name:  "source and scratch",
			roles: []domain.Role{domain.RoleSource, domain.RoleScratch},
			want:  []string{"build", "docs", "src"},
		},
		{
			name:  "explicit paths win over roles",
			only:  []string{"src/pkg", "docs"},
			roles: []domain.Role{domain.RoleCache},
			want:  []string{"src/pkg", "docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paths(SelectMappings(selectionConfig(), tt.only, tt.roles))
			if len(got) != len(tt.want) {
				t.Fatalf("SelectMappings() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SelectMappings() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSelectMappings_EmptyFallsBackToSources(t *testing.T) {
	cfg := selectionConfig()
	cfg.BuildDirs = nil

	got := paths(SelectMappings(cfg, nil, []domain.Role{domain.RoleCache}))
	if len(got) != 2 || got[0] != "src" || got[1] != "docs" {
		t.Errorf("expected fallback to all sources in config order, got %v", got)
	}
}

func TestSelectMappings_KeepsSourceFilters(t *testing.T) {
	got := SelectMappings(selectionConfig(), []string{"./src"}, nil)
	if len(got) != 1 || len(got[0].Exclude) != 1 || got[0].Exclude[0] != "*.tmp" {
		t.Errorf("expected src filters to be carried, got %+v", got)
	}
}
