package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/session"
	"github.com/abhisek/fridayfun/internal/ui/theme"
)

// HistoryEntry renders one previous question: the category tag, time of
// day and the quoted pair, truncated to fit maxWidth display columns.
func HistoryEntry(q session.Question, maxWidth int) string {
	info := q.Category.Info()
	tag := lipgloss.NewStyle().
		Foreground(theme.CategoryColor(info.Color)).
		Bold(true).
		Render(fmt.Sprintf("%s %s", info.Icon, info.Label))
	when := lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.CreatedAt().Format("15:04"))
	text := `"` + q.String() + `"`

	room := maxWidth - lipgloss.Width(tag) - lipgloss.Width(when) - 4
	if room > 3 && lipgloss.Width(text) > room {
		text = truncate(text, room)
	}
	return tag + "  " + when + "  " + theme.Body.Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
