package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/followup-tasks/internal/dashboard"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	mutedColor   = lipgloss.Color("#6B7280")
	errorColor   = lipgloss.Color("#DC2626")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	spinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)
	emptyStyle   = lipgloss.NewStyle().Foreground(mutedColor).Padding(1, 2)
	helpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	helpKeyStyle = lipgloss.NewStyle().Bold(true)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2).
			Width(40)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primaryColor).
		Bold(false)
	return s
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.dash.Loading() && !m.dash.Loaded() {
		return m.spinner.View() + " " + dashboard.LoadingText + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(dashboard.Title))
	if m.dash.Loading() {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	if m.dash.Empty() {
		b.WriteString(emptyStyle.Render(dashboard.EmptyText))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if alert := m.dash.Alert(); alert != "" {
		b.WriteString(alertStyle.Render(alert + "\n\n" + helpStyle.Render("enter to dismiss")))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderHelp())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHelp() string {
	return helpStyle.Render(
		helpKeyStyle.Render("↑/↓") + " select  " +
			helpKeyStyle.Render("enter/c") + " " + strings.ToLower(dashboard.ActionLabel) + "  " +
			helpKeyStyle.Render("r") + " refresh  " +
			helpKeyStyle.Render("q") + " quit",
	)
}
