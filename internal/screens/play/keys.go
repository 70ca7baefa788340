package play

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Category key.Binding
	Prev     key.Binding
	Next     key.Binding
	Again    key.Binding
	History  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Category: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Category"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←→", "Switch"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "tab"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("Enter", "Another"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "History"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
	}
}
