package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/ui/theme"
)

// CategoryBar renders the category picker as a row of numbered tabs.
type CategoryBar struct {
	Active questiongen.Category
}

// View renders the bar centered in width. Narrow terminals drop the
// labels and keep the icons.
func (c CategoryBar) View(width int) string {
	cats := questiongen.Categories()
	tabs := make([]string, 0, len(cats))
	for i, info := range cats {
		tabs = append(tabs, c.tab(i+1, info, true))
	}
	row := strings.Join(tabs, " ")
	if lipgloss.Width(row) > width {
		tabs = tabs[:0]
		for i, info := range cats {
			tabs = append(tabs, c.tab(i+1, info, false))
		}
		row = strings.Join(tabs, " ")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func (c CategoryBar) tab(n int, info questiongen.CategoryInfo, withLabel bool) string {
	label := fmt.Sprintf("%d %s", n, info.Icon)
	if withLabel {
		label += " " + info.Label
	}
	if info.Category == c.Active {
		return theme.ButtonActive.
			Background(theme.CategoryColor(info.Color)).
			Foreground(theme.BgDark).
			Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
