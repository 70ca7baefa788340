package play

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/session"
	"github.com/abhisek/fridayfun/internal/ui/components"
	"github.com/abhisek/fridayfun/internal/ui/layout"
	"github.com/abhisek/fridayfun/internal/ui/theme"
)

const credits = "Middle School Friday Fun Generator. Built with Gemini AI."

func (s *PlayScreen) View(width, height int) string {
	snap := s.store.Snapshot()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.CategoryBar{Active: snap.Category}.View(width))
	b.WriteString("\n\n")

	switch snap.Phase {
	case session.PhaseLoading:
		b.WriteString(center(width, s.spinner.View()+" "+theme.Hint.Render("Brainstorming options...")))
		b.WriteString("\n")
	case session.PhaseFailed:
		b.WriteString(s.renderError(width, snap.Error))
	case session.PhaseLoaded:
		b.WriteString(s.renderQuestion(width, snap.Current))
	default:
		b.WriteString(center(width, theme.Hint.Render("Pick a category to get started.")))
		b.WriteString("\n")
	}

	if len(snap.Recent) > 0 && !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(renderRecent(width, snap.Recent))
	}

	b.WriteString("\n")
	b.WriteString(center(width, theme.Hint.Render(credits)))
	return b.String()
}

func (s *PlayScreen) renderQuestion(width int, q *session.Question) string {
	cardWidth := width * 2 / 3
	if cardWidth < 40 {
		cardWidth = width - 4
	}

	var b strings.Builder
	b.WriteString(center(width, theme.Badge.Render("Would You Rather...")))
	b.WriteString("\n\n")
	b.WriteString(center(width, theme.OptionA.Width(cardWidth).Render(q.OptionA)))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Or.Render("OR")))
	b.WriteString("\n")
	b.WriteString(center(width, theme.OptionB.Width(cardWidth).Render(q.OptionB)))
	b.WriteString("\n\n")
	b.WriteString(center(width, s.actionButton().View()))
	b.WriteString("\n")
	return b.String()
}

func (s *PlayScreen) renderError(width int, msg string) string {
	var b strings.Builder
	b.WriteString(center(width, "😵"))
	b.WriteString("\n\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(msg)))
	b.WriteString("\n\n")
	b.WriteString(center(width, s.actionButton().View()))
	b.WriteString("\n")
	return b.String()
}

func renderRecent(width int, recent []session.Question) string {
	var b strings.Builder
	b.WriteString(center(width, theme.Title.Render("Previous Questions")))
	b.WriteString("\n")
	for _, q := range recent {
		b.WriteString(center(width, components.HistoryEntry(q, width-8)))
		b.WriteString("\n")
	}
	return b.String()
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
