package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestHandle_Dispatch(t *testing.T) {
	r := NewRegistry()

	fired := false
	r.RegisterCommand(Command{
		ID:   "open-file",
		Name: "Open",
		Handler: func() tea.Cmd {
			fired = true
			return nil
		},
	})
	r.Bind("o", "open-file")

	r.Handle(keyMsg("o"))
	if !fired {
		t.Error("bound command did not fire")
	}
}

func TestHandle_Unbound(t *testing.T) {
	r := NewRegistry()
	if cmd := r.Handle(keyMsg("z")); cmd != nil {
		t.Error("unbound key returned a command")
	}
}

func TestHandle_OverridePrecedence(t *testing.T) {
	r := NewRegistry()

	var got string
	r.RegisterCommand(Command{ID: "first", Handler: func() tea.Cmd { got = "first"; return nil }})
	r.RegisterCommand(Command{ID: "second", Handler: func() tea.Cmd { got = "second"; return nil }})
	r.Bind("x", "first")
	r.SetUserOverride("x", "second")

	r.Handle(keyMsg("x"))
	if got != "second" {
		t.Errorf("dispatched %q, want override %q", got, "second")
	}
}

func TestBindings_Sorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand(Command{ID: "quit", Name: "Quit"})
	r.RegisterCommand(Command{ID: "refresh", Name: "Refresh"})
	r.Bind("r", "refresh")
	r.Bind("q", "quit")

	got := r.Bindings()
	if len(got) != 2 {
		t.Fatalf("got %d bindings, want 2", len(got))
	}
	if got[0][0] != "q" || got[0][1] != "Quit" {
		t.Errorf("first binding = %v, want [q Quit]", got[0])
	}
	if got[1][0] != "r" || got[1][1] != "Refresh" {
		t.Errorf("second binding = %v, want [r Refresh]", got[1])
	}
}
