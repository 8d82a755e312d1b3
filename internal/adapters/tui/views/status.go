package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ramws/internal/adapters/tui/styles"
	"ramws/internal/domain"
)

// RenderStatus renders a workspace snapshot as a labelled report
func RenderStatus(snap domain.StatusSnapshot) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("ramws"))
	b.WriteString("\n")

	if !snap.Exists {
		b.WriteString(RenderLabelValue("Workspace", snap.WorkspaceRoot))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render("(not created)"))
		b.WriteString("\n")
		b.WriteString(RenderLabelValue("Config", snap.ConfigPath))
		b.WriteString("\n")
		writeLastSync(&b, snap.LastSync)
		return b.String()
	}

	b.WriteString(RenderLabelValue("Workspace", snap.WorkspaceRoot))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Config", snap.ConfigPath))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Filesystem", renderCapacity(snap.Capacity)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("Pending", RenderDiff(snap.Diff)))
	b.WriteString("\n")
	b.WriteString(RenderLabelValue("On exit", fmt.Sprintf("%s (delete: %t)", snap.SyncPolicy.OnExit, snap.SyncPolicy.Delete)))
	b.WriteString("\n")
	writeLastSync(&b, snap.LastSync)

	return b.String()
}

// RenderDiff renders a summary as +added ~changed -deleted
func RenderDiff(d domain.DiffSummary) string {
	if d.IsZero() {
		return styles.MutedText.Render("none")
	}
	return strings.Join([]string{
		styles.AddedText.Render(fmt.Sprintf("+%d", d.Added)),
		styles.ChangedText.Render(fmt.Sprintf("~%d", d.Changed)),
		styles.DeletedText.Render(fmt.Sprintf("-%d", d.Deleted)),
	}, " ")
}

// RenderHistory renders journal entries, newest first
func RenderHistory(runs []domain.SyncRun, now time.Time) string {
	if len(runs) == 0 {
		return styles.MutedText.Render("No sync runs recorded") + "\n"
	}

	var b strings.Builder
	for _, run := range runs {
		direction := styles.Badge.
			Background(styles.DirectionColor(run.Direction.String())).
			Render(fmt.Sprintf("%-8s", run.Direction))
		b.WriteString(direction)
		b.WriteString(" ")
		b.WriteString(humanize.RelTime(run.FinishedAt, now, "ago", "from now"))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("(%s)", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))))
		b.WriteString(" ")
		b.WriteString(strings.Join(run.Paths, ", "))
		if !run.Succeeded() {
			b.WriteString(" ")
			b.WriteString(styles.ErrorMsg.Render(run.Err))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCapacity(c *domain.Capacity) string {
	if c == nil {
		return styles.MutedText.Render("unknown")
	}
	text := fmt.Sprintf("%s, %s used of %s, %s available",
		c.FSType,
		humanize.IBytes(c.Used),
		humanize.IBytes(c.Total),
		humanize.IBytes(c.Available),
	)
	if c.FSType != "tmpfs" {
		return text + " " + styles.WarningBadge.Render("not memory-backed")
	}
	return text
}

func writeLastSync(b *strings.Builder, run *domain.SyncRun) {
	if run == nil {
		return
	}
	status := styles.Success.Render("ok")
	if !run.Succeeded() {
		status = styles.ErrorMsg.Render("failed")
	}
	b.WriteString(RenderLabelValue("Last sync", fmt.Sprintf("%s %s %s",
		run.Direction,
		humanize.Time(run.FinishedAt),
		status,
	)))
	b.WriteString("\n")
}
