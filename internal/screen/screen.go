// Package screen defines what the router stacks: a self-contained view
// with its own update loop that renders inside the app frame.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fridayfun/internal/ui/layout"
)

type Screen interface {
	// Init runs when the screen is pushed.
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only. Width and height exclude header and footer.
	View(width, height int) string

	// Title is shown on the right of the header.
	Title() string
}

// KeyHintProvider screens list their bindings in the footer.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer screens restart work, such as the spinner tick, when a screen
// above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
