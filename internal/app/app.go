package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/router"
	"github.com/abhisek/fridayfun/internal/screen"
	"github.com/abhisek/fridayfun/internal/screens/play"
	"github.com/abhisek/fridayfun/internal/session"
	"github.com/abhisek/fridayfun/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Store    *session.Store
	Category questiongen.Category
	Logger   *zap.Logger
}

// AppModel is the root Bubble Tea model. The update loop is the only
// goroutine that touches the session store.
type AppModel struct {
	store  *session.Store
	logger *zap.Logger
	router *router.Router
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		store:  opts.Store,
		logger: logger,
		router: router.New(play.New(ctx, opts.Store, opts.Category)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case play.ResultMsg:
		m.store.Complete(msg.Result)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders the whole screen: header, active screen and footer.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	active := m.router.Active()
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	return layout.Frame(active.Title(), hints, m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	m.logger.Info("starting tui", zap.String("category", string(opts.Category)))

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
