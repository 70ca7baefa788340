// Package theme holds the palette and shared lipgloss styles. Colours
// follow the indigo-to-purple gradient of the classroom display.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo-500
	Secondary = lipgloss.Color("#A855F7") // purple-500
	Accent    = lipgloss.Color("#F97316") // orange-500
	Error     = lipgloss.Color("#F43F5E") // rose-500
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// CategoryColor parses a category's hex colour, falling back to Primary.
func CategoryColor(hex string) color.Color {
	if hex == "" {
		return Primary
	}
	return lipgloss.Color(hex)
}

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

var (
	// Badge labels the question ("Would You Rather...").
	Badge = pill(Secondary).Bold(true)

	// OptionA and OptionB frame the two choices in contrasting colours.
	OptionA = optionCard(Primary)
	OptionB = optionCard(Secondary)

	Or = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)

var (
	ButtonActive   = pill(Primary).Bold(true)
	ButtonInactive = pill(BgCard).Foreground(TextDim)
)

func pill(bg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(Text).Padding(0, 2)
}

func optionCard(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Align(lipgloss.Center)
}
