// Package layout draws the chrome around every screen: a header with the
// wordmark, a footer with key hints, and the content area between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this height the tagline and the recent-questions list are hidden.
	CompactHeightThreshold = 32
)

const (
	Brand   = "FRIDAY FUN!"
	Tagline = `Keep your 6th, 7th, and 8th graders engaged with the ultimate middle school "Would You Rather" challenge.`
)

type KeyHint struct {
	Key         string
	Description string
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// bar is the bordered strip used for both header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// Frame renders a full terminal frame. body is called with the size left
// over once header and footer are laid out.
func Frame(title string, hints []KeyHint, width, height int, body func(w, h int) string) string {
	if IsTooSmall(width, height) {
		return RenderMinSizeMessage(width, height)
	}

	header := RenderHeader(title, width, height)
	footer := RenderFooter(hints, width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func RenderMinSizeMessage(width, height int) string {
	msg := theme.Title.Render("Terminal too small!") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("Please resize to at least %d x %d", MinWidth, MinHeight)) + "\n" +
		theme.Hint.Render(fmt.Sprintf("Current: %d x %d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(msg))
}

// RenderHeader puts the wordmark left and the screen title right. Tall
// terminals also get the tagline.
func RenderHeader(title string, width, height int) string {
	inner := max(width-4, 0)

	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(Brand)
	right := lipgloss.PlaceHorizontal(max(inner-lipgloss.Width(brand), 0), lipgloss.Right,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title))
	lines := []string{brand + right}

	if !IsCompactHeight(height) {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(inner).
			Align(lipgloss.Center).
			Render(Tagline))
	}
	return bar(width).Render(strings.Join(lines, "\n"))
}

// RenderFooter lists hints left to right, dropping trailing ones that do
// not fit on a single line.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(width-4, 0)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return bar(width).Render(line)
}
