package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fridayfun/internal/ui/theme"
)

// Button is a key-driven action. It renders its label and the first help
// key of its binding, e.g. "▸ Try Again  enter".
type Button struct {
	Label   string
	Active  bool
	Keys    key.Binding
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, keys key.Binding, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, Keys: keys, OnPress: onPress}
}

// Update fires OnPress for a matching key while the button is active.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil || !key.Matches(kmsg, b.Keys) {
		return b, nil
	}
	return b, b.OnPress()
}

func (b Button) View() string {
	label := "▸ " + b.Label
	if k := b.Keys.Help().Key; k != "" {
		label += "  " + k
	}
	if !b.Active {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}
