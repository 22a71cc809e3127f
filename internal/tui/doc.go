// Package tui provides terminal user interface components for seabox.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily the box picker behind the pick command.
//
// # Box Picker
//
// The picker displays recorded boxes and allows selection:
//
//	result, err := tui.RunPicker(boxes)
//	switch result.Action {
//	case tui.ActionEnter:
//	    // Enter result.Box
//	case tui.ActionRemove:
//	    // Remove result.Box
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Lists all recorded boxes with image, root mode and creation time
//   - Keyboard navigation (j/k or arrows), filtering with /
//   - Quick actions: Enter (enter), r (remove), q (quit)
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
