package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"scriptsense/internal/complete"
	"scriptsense/internal/host"
	"scriptsense/internal/modindex"
)

func testExplorer(warm func(context.Context) error) *Explorer {
	engine := complete.New(complete.Options{
		Host: host.NewCatalog(host.ClassSpec{
			Name:    "java.lang.String",
			Methods: []host.MethodSpec{{Name: "length", Returns: "int"}, {Name: "trim", Returns: "java.lang.String"}},
		}),
		Modules:  modindex.NewStatic(map[string][]string{"os": {"path", "sep"}}),
		Builtins: host.NewBuiltins(),
	})
	return New(Options{Engine: engine, Source: "import os\nsalute = 'hi'\n", Warm: warm})
}

func typeText(m *Explorer, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func displays(items []complete.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Display)
	}
	return out
}

func TestTypingRefreshesItems(t *testing.T) {
	m := testExplorer(nil)
	typeText(m, "sal")
	if got := displays(m.items); len(got) != 1 || got[0] != "salute" {
		t.Fatalf("items = %v", got)
	}
	typeText(m, "ute.l")
	if got := displays(m.items); len(got) != 1 || got[0] != "length()" {
		t.Fatalf("member items = %v", got)
	}
	if !strings.Contains(m.View(), "length()") {
		t.Fatalf("view misses item:\n%s", m.View())
	}
}

func TestAcceptAndNavigate(t *testing.T) {
	m := testExplorer(nil)
	typeText(m, "os.")
	if len(m.items) != 2 {
		t.Fatalf("items = %v", displays(m.items))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.input.Value(); got != "os.sep" {
		t.Fatalf("accepted value = %q", got)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Fatalf("esc should quit")
	}
}

func TestWarmStatus(t *testing.T) {
	m := testExplorer(func(context.Context) error { return errors.New("boom") })
	if !m.warming || !strings.Contains(m.View(), "loading modules") {
		t.Fatalf("expected warming status")
	}
	m.Update(warmDoneMsg{err: errors.New("boom")})
	if m.warming || !strings.Contains(m.View(), "boom") {
		t.Fatalf("expected failure in status:\n%s", m.View())
	}
}
