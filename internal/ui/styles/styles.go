// Package styles defines the visual appearance of failbell's terminal output.
// Using Catppuccin Mocha color palette.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha color palette
var (
	Mauve    = lipgloss.Color("#CBA6F7")
	Red      = lipgloss.Color("#F38BA8")
	Peach    = lipgloss.Color("#FAB387")
	Yellow   = lipgloss.Color("#F9E2AF")
	Green    = lipgloss.Color("#A6E3A1")
	Sapphire = lipgloss.Color("#74C7EC")
	Blue     = lipgloss.Color("#89B4FA")

	Text     = lipgloss.Color("#CDD6F4")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475A")
)

// Semantic colors (using the palette)
var (
	Primary   = Mauve
	Accent    = Sapphire
	Danger    = Red
	Warning   = Peach
	Success   = Green
	Info      = Blue
	Muted     = Overlay0
	TextCol   = Text
	TextMuted = Subtext0
)

// Notice styles, printed to stderr around the wrapped session.
var (
	Brand = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	InfoBadge = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	WarnBadge = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorBadge = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	NoticeText = lipgloss.NewStyle().
			Foreground(TextCol)

	NoticeDetail = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)
)

// Report styles for check and history.
var (
	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			Background(Surface0).
			Padding(0, 1)

	Key = lipgloss.NewStyle().
		Foreground(Accent).
		Width(24)

	Value = lipgloss.NewStyle().
		Foreground(TextCol)

	Dim = lipgloss.NewStyle().
		Foreground(Muted)

	OK = lipgloss.NewStyle().
		Foreground(Success)

	Bad = lipgloss.NewStyle().
		Foreground(Danger)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Overlay0)
)

// Icons
var (
	IconBell    = "🔔"
	IconWarning = "⚠"
	IconError   = "✗"
	IconSuccess = "✓"
	IconDot     = "●"
)

// KindColor returns the color for an alert kind.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "exit_code":
		return Danger
	case "output":
		return Warning
	default:
		return Muted
	}
}

// RenderKindDot returns a colored dot for an alert kind.
func RenderKindDot(kind string) string {
	return lipgloss.NewStyle().Foreground(KindColor(kind)).Render(IconDot)
}

// TruncateWithEllipsis truncates s to maxLen runes with an ellipsis.
func TruncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// RenderFancyHeader draws a decorated title line width cells wide.
func RenderFancyHeader(title string, width int) string {
	left := lipgloss.NewStyle().Foreground(Mauve).Render("╭─")
	right := lipgloss.NewStyle().Foreground(Mauve).Render("─╮")
	titleStyled := SectionTitle.Render(title)

	fillWidth := width - lipgloss.Width(titleStyled) - lipgloss.Width(left) - lipgloss.Width(right)
	if fillWidth < 0 {
		fillWidth = 0
	}
	leftFill := fillWidth / 2
	rightFill := fillWidth - leftFill

	line := lipgloss.NewStyle().Foreground(Surface1)
	return left + line.Render(strings.Repeat("─", leftFill)) + titleStyled + line.Render(strings.Repeat("─", rightFill)) + right
}
