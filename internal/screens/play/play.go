package play

import (
	"context"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/router"
	"github.com/abhisek/fridayfun/internal/screen"
	"github.com/abhisek/fridayfun/internal/screens/history"
	"github.com/abhisek/fridayfun/internal/session"
	"github.com/abhisek/fridayfun/internal/ui/components"
	"github.com/abhisek/fridayfun/internal/ui/layout"
	"github.com/abhisek/fridayfun/internal/ui/theme"
)

// ResultMsg carries a finished generation back to the update loop. The
// app model applies it to the store so results land even when another
// screen is on top.
type ResultMsg struct {
	Result session.Result
}

// Generate runs req off the update loop.
func Generate(ctx context.Context, store *session.Store, req session.Request) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Result: store.Generate(ctx, req)}
	}
}

// PlayScreen shows the category picker, the current question and the
// previous few questions.
type PlayScreen struct {
	ctx     context.Context
	store   *session.Store
	start   questiongen.Category
	spinner spinner.Model
	keys    keyMap
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.Resumer = (*PlayScreen)(nil)

// New creates a PlayScreen that loads start when first shown.
func New(ctx context.Context, store *session.Store, start questiongen.Category) *PlayScreen {
	if !start.Valid() {
		start = questiongen.DefaultCategory
	}
	return &PlayScreen{
		ctx:   ctx,
		store: store,
		start: start,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
		keys: defaultKeyMap(),
	}
}

// Init performs the initial load.
func (s *PlayScreen) Init() tea.Cmd {
	return s.selectCategory(s.start)
}

// Resume restarts the spinner if a request finished loading while
// another screen was active.
func (s *PlayScreen) Resume() tea.Cmd {
	if s.store.Phase() == session.PhaseLoading {
		return s.spinner.Tick
	}
	return nil
}

func (s *PlayScreen) Title() string {
	return "Would You Rather"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	bindings := []key.Binding{s.keys.Category, s.keys.Prev, s.keys.Again, s.keys.History, s.keys.Quit}
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if s.store.Phase() != session.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s, tea.Quit

	case key.Matches(msg, s.keys.History):
		return s, router.Open(history.New(s.store))

	case key.Matches(msg, s.keys.Category):
		idx := int(msg.String()[0] - '1')
		cats := questiongen.Categories()
		if idx < 0 || idx >= len(cats) {
			return s, nil
		}
		return s, s.selectCategory(cats[idx].Category)

	case key.Matches(msg, s.keys.Prev):
		return s, s.selectCategory(s.step(-1))

	case key.Matches(msg, s.keys.Next):
		return s, s.selectCategory(s.step(1))
	}

	_, cmd := s.actionButton().Update(msg)
	return s, cmd
}

// step returns the category delta positions away from the active one,
// wrapping around.
func (s *PlayScreen) step(delta int) questiongen.Category {
	cats := questiongen.Categories()
	cur := 0
	for i, info := range cats {
		if info.Category == s.store.Category() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(cats)) % len(cats)
	return cats[next].Category
}

func (s *PlayScreen) selectCategory(cat questiongen.Category) tea.Cmd {
	return s.issue(s.store.SelectCategory(cat))
}

func (s *PlayScreen) regenerate() tea.Cmd {
	return s.issue(s.store.Regenerate())
}

func (s *PlayScreen) issue(req session.Request) tea.Cmd {
	return tea.Batch(Generate(s.ctx, s.store, req), s.spinner.Tick)
}

// actionButton is "Give Me Another One!" normally and "Try Again" after a
// failure. It is disabled while a request is outstanding.
func (s *PlayScreen) actionButton() components.Button {
	label := "🔄 Give Me Another One!"
	if s.store.Phase() == session.PhaseFailed {
		label = "Try Again"
	}
	return components.NewButton(label, s.store.Phase() != session.PhaseLoading, s.keys.Again, s.regenerate)
}
