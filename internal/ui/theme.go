package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tradecheck/internal/reminder"
)

// Theme holds the styles shared by the TUI and the plain CLI output.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Muted   lipgloss.Color

	TitleStyle   lipgloss.Style
	CursorStyle  lipgloss.Style
	CheckedStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
}

// NewTheme builds the theme for a renderer. A nil renderer uses the
// lipgloss default, which follows stdout.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Success: lipgloss.Color("#10B981"),
		Warning: lipgloss.Color("#F59E0B"),
		Danger:  lipgloss.Color("#EF4444"),
		Muted:   lipgloss.Color("#6B7280"),
	}

	t.TitleStyle = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.CursorStyle = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.CheckedStyle = r.NewStyle().Foreground(t.Success)
	t.MutedStyle = r.NewStyle().Foreground(t.Muted)
	t.InfoStyle = r.NewStyle().Foreground(t.Primary)
	t.SuccessStyle = r.NewStyle().Foreground(t.Success).Bold(true)
	t.WarningStyle = r.NewStyle().Foreground(t.Warning).Bold(true)
	t.ErrorStyle = r.NewStyle().Foreground(t.Danger)
	return t
}

// Box renders the check box for an item.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.CheckedStyle.Render("[x]")
	}
	return "[ ]"
}

// Reminder renders a reminder line styled by its kind.
func (t Theme) Reminder(r reminder.Reminder) string {
	switch r.Kind {
	case reminder.KindSuccess:
		return t.SuccessStyle.Render("✓ " + r.Message)
	case reminder.KindWarning:
		return t.WarningStyle.Render("! " + r.Message)
	default:
		return t.InfoStyle.Render("i " + r.Message)
	}
}
