// Package render formats tracker output for the terminal.
package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/zhubert/worklog/session"
	"github.com/zhubert/worklog/tracker"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess = lipgloss.Color("#10B981") // Green
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	projectStyle = lipgloss.NewStyle().Bold(true)
	branchStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	openStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// CheckoutSummary renders the result of one checkout: the session's
// bounds, the projects that changed, and any scan warnings.
func CheckoutSummary(s *tracker.Summary) string {
	var b strings.Builder

	start := s.Session.Start
	end := start
	if s.Session.End != nil {
		end = *s.Session.End
	}

	b.WriteString(titleStyle.Render("Session complete"))
	b.WriteString("\n")
	b.WriteString("  " + labelStyle.Render("Started ") + "  " + start.Format("2006-01-02 15:04") + "\n")
	b.WriteString("  " + labelStyle.Render("Ended   ") + "  " + end.Format("2006-01-02 15:04") + "\n")
	b.WriteString("  " + labelStyle.Render("Duration") + "  " + FormatDuration(end.Sub(start)) + "\n")
	b.WriteString("\n")

	if len(s.Changed) == 0 {
		b.WriteString(labelStyle.Render("No projects changed.") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Changed projects (%d):\n", len(s.Changed)))
		for _, project := range s.Changed {
			line := "  " + projectStyle.Render(filepath.Base(project))
			if branch, ok := s.BranchByProject[project]; ok {
				line += " " + branchStyle.Render("["+branch+"]")
			}
			b.WriteString(line + "\n")
		}
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Warnings (%d):", len(s.Warnings))) + "\n")
		for _, w := range s.Warnings {
			b.WriteString("  " + w.Path + ": " + w.Err.Error() + "\n")
		}
	}

	return b.String()
}

// HistoryTable renders closed sessions as a table, one row per session.
func HistoryTable(sessions []session.Session) string {
	if len(sessions) == 0 {
		return labelStyle.Render("No sessions recorded.") + "\n"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-17s %-9s %s", "STARTED", "DURATION", "PROJECTS")) + "\n")
	for _, sess := range sessions {
		b.WriteString(fmt.Sprintf("%-17s %-9s %s\n",
			sess.Start.Format("2006-01-02 15:04"),
			FormatDuration(sess.Duration()),
			summarizeProjects(sess.ProjectsChanged),
		))
	}
	return b.String()
}

// StatusLine renders the open session state as a single line.
func StatusLine(open *session.Session) string {
	if open == nil {
		return labelStyle.Render("No open session.") + "\n"
	}
	return fmt.Sprintf("%s Checked in since %s %s\n",
		openStyle.Render("●"),
		open.Start.Format("15:04"),
		labelStyle.Render("("+FormatDuration(open.Duration())+")"),
	)
}

// FormatDuration renders a session length as hours and minutes,
// rounded to the minute.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// summarizeProjects joins project base names for a table cell.
func summarizeProjects(projects []string) string {
	if len(projects) == 0 {
		return "-"
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, ", ")
}
