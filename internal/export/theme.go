package export

import "github.com/charmbracelet/lipgloss"

// Theme is the Sky Blue palette shared by terminal output
var Theme = struct {
	Primary     lipgloss.Color
	PrimaryDark lipgloss.Color
	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	Border      lipgloss.Color
}{
	Primary:     lipgloss.Color("#38BDF8"), // Sky Blue 400
	PrimaryDark: lipgloss.Color("#0EA5E9"), // Sky Blue 500
	Text:        lipgloss.Color("#F8FAFC"), // Slate 50
	TextMuted:   lipgloss.Color("#CBD5E1"), // Slate 300
	TextSubtle:  lipgloss.Color("#94A3B8"), // Slate 400
	Border:      lipgloss.Color("#475569"), // Slate 600
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Theme.PrimaryDark).
			MarginBottom(1)

	idStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Theme.Primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(Theme.TextSubtle)

	textStyle = lipgloss.NewStyle().
			Foreground(Theme.Text)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Theme.Border).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(Theme.TextMuted).
			MarginTop(1)
)
