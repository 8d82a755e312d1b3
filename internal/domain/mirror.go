package domain

// Direction of a mirror between the two roots
type Direction int

const (
	OriginToWorkspace Direction = iota
	WorkspaceToOrigin
)

func (d Direction) String() string {
	switch d {
	case OriginToWorkspace:
		return "refresh"
	case WorkspaceToOrigin:
		return "syncback"
	default:
		return "unknown"
	}
}

// ParseDirection is the inverse of Direction.String
func ParseDirection(s string) Direction {
	if s == "syncback" {
		return WorkspaceToOrigin
	}
	return OriginToWorkspace
}

// MirrorOptions configures a single mirror call
type MirrorOptions struct {
	Delete  bool     // Remove destination entries absent from source
	DryRun  bool     // Never mutate, only itemize
	Itemize bool     // Emit per-entry change lines
	Include []string // Emitted in order, before Exclude
	Exclude []string
}

// ItemizedChanges is the per-entry output of a mirror
type ItemizedChanges struct {
	Lines []string
}

// MarshalText renders the direction by name in JSON output
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a direction name
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}
