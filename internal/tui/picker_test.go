package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seabox-dev/seabox/internal/state"
)

func TestBoxItemMethods(t *testing.T) {
	record := &state.Record{
		Name:      "devbox",
		Image:     "docker.io/library/ubuntu:24.04",
		Rootful:   false,
		CreatedAt: "2026-08-30T10:00:00Z",
	}

	item := boxItem{record: record}

	t.Run("Title", func(t *testing.T) {
		if got := item.Title(); got != "devbox" {
			t.Errorf("Title() = %q, want %q", got, "devbox")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		if got := item.FilterValue(); got != "devbox" {
			t.Errorf("FilterValue() = %q, want %q", got, "devbox")
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := item.Description()
		if !strings.Contains(desc, "ubuntu:24.04") {
			t.Error("Description should contain the image")
		}
		if !strings.Contains(desc, "user") {
			t.Error("Description should contain the user mode")
		}
		if !strings.Contains(desc, "2026-08-30") {
			t.Error("Description should contain the creation time")
		}
	})

	t.Run("Description rootful", func(t *testing.T) {
		item := boxItem{record: &state.Record{Name: "adm", Rootful: true}}
		if !strings.Contains(item.Description(), "root") {
			t.Error("Description should show root mode for rootful boxes")
		}
	})
}

func TestModelKeyHandling(t *testing.T) {
	record := &state.Record{
		Name:  "devbox",
		Image: "ubuntu",
	}

	t.Run("quit with q", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
	})

	t.Run("enter selects box", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionEnter {
			t.Errorf("Action = %v, want ActionEnter", model.result.Action)
		}
		if model.result.Box == nil || model.result.Box.Name != "devbox" {
			t.Error("Selected box should be the highlighted record")
		}
	})

	t.Run("remove with r", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
		model := newModel.(Model)

		if model.result.Action != ActionRemove {
			t.Errorf("Action = %v, want ActionRemove", model.result.Action)
		}
		if model.result.Box == nil || model.result.Box.Name != "devbox" {
			t.Error("Selected box should be the highlighted record")
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 {
			t.Errorf("Width = %d, want 100", model.width)
		}
		if model.height != 50 {
			t.Errorf("Height = %d, want 50", model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	record := &state.Record{Name: "devbox", Image: "ubuntu"}

	t.Run("normal view contains help", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		view := m.View()

		if !strings.Contains(view, "[enter] Enter") {
			t.Error("View should contain enter help")
		}
		if !strings.Contains(view, "[r] Remove") {
			t.Error("View should contain remove help")
		}
		if !strings.Contains(view, "[q] Quit") {
			t.Error("View should contain quit help")
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewPicker([]*state.Record{record})
		m.quitting = true

		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestModelResult(t *testing.T) {
	m := Model{
		result: PickerResult{
			Action: ActionEnter,
			Box:    &state.Record{Name: "devbox"},
		},
	}

	result := m.Result()
	if result.Action != ActionEnter {
		t.Errorf("Action = %v, want ActionEnter", result.Action)
	}
	if result.Box.Name != "devbox" {
		t.Errorf("Box.Name = %q, want %q", result.Box.Name, "devbox")
	}
}

func TestRunPickerEmptyBoxes(t *testing.T) {
	result, err := RunPicker(nil)
	if err != nil {
		t.Fatalf("RunPicker with no boxes failed: %v", err)
	}

	if result.Action != ActionQuit {
		t.Errorf("No boxes should return ActionQuit, got %v", result.Action)
	}
}

func TestActionConstants(t *testing.T) {
	// Verify action constants have distinct values
	actions := []Action{ActionNone, ActionEnter, ActionRemove, ActionQuit}
	seen := make(map[Action]bool)

	for _, a := range actions {
		if seen[a] {
			t.Errorf("Duplicate action value: %v", a)
		}
		seen[a] = true
	}
}
