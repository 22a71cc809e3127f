// Package tui provides terminal user interface components for seabox
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seabox-dev/seabox/internal/state"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionEnter
	ActionRemove
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Box    *state.Record
}

// boxItem implements list.Item for box display
type boxItem struct {
	record *state.Record
}

func (i boxItem) Title() string {
	return i.record.Name
}

func (i boxItem) Description() string {
	mode := "user"
	if i.record.Rootful {
		mode = "root"
	}

	return fmt.Sprintf("%s | %s | created %s",
		i.record.Image,
		mode,
		i.record.CreatedAt,
	)
}

func (i boxItem) FilterValue() string {
	return i.record.Name
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the box picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new box picker
func NewPicker(boxes []*state.Record) Model {
	items := make([]list.Item, len(boxes))
	for i, box := range boxes {
		items[i] = boxItem{record: box}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "seabox - Select Box"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(boxItem); ok {
				m.result = PickerResult{
					Action: ActionEnter,
					Box:    item.record,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "r":
			if item, ok := m.list.SelectedItem().(boxItem); ok {
				m.result = PickerResult{
					Action: ActionRemove,
					Box:    item.record,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Enter  [r] Remove  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive box picker
func RunPicker(boxes []*state.Record) (PickerResult, error) {
	if len(boxes) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(boxes)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
