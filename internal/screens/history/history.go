package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/router"
	"github.com/abhisek/fridayfun/internal/screen"
	"github.com/abhisek/fridayfun/internal/session"
	"github.com/abhisek/fridayfun/internal/ui/components"
	"github.com/abhisek/fridayfun/internal/ui/layout"
	"github.com/abhisek/fridayfun/internal/ui/theme"
)

// HistoryScreen lists every retained question, newest first.
type HistoryScreen struct {
	store    *session.Store
	selected int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(store *session.Store) *HistoryScreen {
	return &HistoryScreen{store: store}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "h", "q":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.store.Snapshot().History)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	snap := s.store.Snapshot()
	if len(snap.History) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No questions yet. Pick a category!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(fmt.Sprintf("Last %d of %d kept", len(snap.History), session.MaxHistory))))
	b.WriteString("\n\n")

	for i, q := range snap.History {
		prefix := "  "
		if i == s.selected {
			prefix = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("> ")
		}
		if i == 0 && snap.Current != nil && q.ID == snap.Current.ID {
			prefix += lipgloss.NewStyle().Foreground(theme.Accent).Render("now ")
		} else {
			prefix += "    "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			prefix+components.HistoryEntry(q, width-14)))
		b.WriteString("\n")
	}

	return b.String()
}
