package components

import (
	"strings"
	"testing"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fridayfun/internal/questiongen"
	"github.com/abhisek/fridayfun/internal/session"
)

type pressedMsg struct{}

func TestButton_PressOnBoundKey(t *testing.T) {
	keys := key.NewBinding(key.WithKeys("r"))
	b := NewButton("Try Again", true, keys, func() tea.Cmd {
		return func() tea.Msg { return pressedMsg{} }
	})

	_, cmd := b.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected command on bound key")
	}
	if _, ok := cmd().(pressedMsg); !ok {
		t.Error("expected pressedMsg")
	}

	if _, cmd := b.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("expected no command on unbound key")
	}
}

func TestButton_InactiveIgnoresKeys(t *testing.T) {
	pressed := false
	b := NewButton("Go", false, key.NewBinding(key.WithKeys("enter")), func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed {
		t.Error("inactive button must not fire")
	}
	if !strings.Contains(b.View(), "Go") {
		t.Error("expected label in view")
	}
}

func TestCategoryBar_ShowsAllCategories(t *testing.T) {
	view := CategoryBar{Active: questiongen.CategoryAnimal}.View(120)
	for _, info := range questiongen.Categories() {
		if !strings.Contains(view, info.Label) {
			t.Errorf("expected %q in bar", info.Label)
		}
	}
}

func TestCategoryBar_NarrowDropsLabels(t *testing.T) {
	view := CategoryBar{Active: questiongen.CategoryFunny}.View(30)
	if strings.Contains(view, "Thoughtful") {
		t.Error("expected labels dropped on narrow width")
	}
	if !strings.Contains(view, "🤔") {
		t.Error("expected icons kept on narrow width")
	}
}

func TestHistoryEntry(t *testing.T) {
	ts := time.Date(2026, 10, 16, 14, 5, 0, 0, time.Local)
	q := session.Question{
		Category:  questiongen.CategoryGross,
		OptionA:   "Eat a bug",
		OptionB:   "Lick a shoe",
		Timestamp: ts.UnixMilli(),
	}

	line := HistoryEntry(q, 100)
	for _, want := range []string{"Gross", "14:05", `"Eat a bug OR Lick a shoe"`} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
}

func TestHistoryEntry_Truncates(t *testing.T) {
	q := session.Question{
		Category: questiongen.CategoryFunny,
		OptionA:  strings.Repeat("a", 80),
		OptionB:  strings.Repeat("b", 80),
	}
	line := HistoryEntry(q, 60)
	if !strings.Contains(line, "...") {
		t.Error("expected truncation marker")
	}
	if w := lipgloss.Width(line); w > 60 {
		t.Errorf("expected width <= 60, got %d", w)
	}
}
