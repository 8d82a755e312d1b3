package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Change colors
	Added   = lipgloss.Color("#10B981") // Green
	Changed = lipgloss.Color("#60A5FA") // Blue
	Deleted = lipgloss.Color("#EF4444") // Red

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Status report
	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true).
		Width(12)

	Value = lipgloss.NewStyle()

	Badge = lipgloss.NewStyle().
		Background(Primary).
		Foreground(White).
		Padding(0, 1)

	WarningBadge = lipgloss.NewStyle().
			Background(Warning).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1)

	AddedText   = lipgloss.NewStyle().Foreground(Added)
	ChangedText = lipgloss.NewStyle().Foreground(Changed)
	DeletedText = lipgloss.NewStyle().Foreground(Deleted)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// DirectionColor returns the color for a sync direction name
func DirectionColor(direction string) lipgloss.Color {
	switch direction {
	case "refresh":
		return Changed
	case "syncback":
		return Secondary
	default:
		return Muted
	}
}
