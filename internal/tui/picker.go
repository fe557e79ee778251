package tui

import (
	"fmt"
	"strings"

	"claudewarp/config/models"
	"claudewarp/internal/utils"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionSwitch
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Name   string
}

// profileItem implements list.Item
type profileItem struct {
	profile models.Profile
	current bool
}

func (i profileItem) Title() string {
	title := i.profile.Name
	if i.current {
		title += " (current)"
	}
	return title
}

func (i profileItem) Description() string {
	statusIcon := "✓"
	if !i.profile.IsActive {
		statusIcon = "○"
	}
	if i.profile.IsBuiltin() {
		return fmt.Sprintf("%s %s", statusIcon, i.profile.Description)
	}

	parts := []string{statusIcon + " " + i.profile.BaseURL}
	if i.profile.Description != "" {
		parts = append(parts, utils.Truncate(i.profile.Description, 40))
	}
	if len(i.profile.Tags) > 0 {
		parts = append(parts, strings.Join(i.profile.Tags, ","))
	}
	return strings.Join(parts, " | ")
}

func (i profileItem) FilterValue() string {
	return i.profile.Name + " " + strings.Join(i.profile.Tags, " ")
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

// Model is the bubbletea model for the profile picker
type Model struct {
	list     list.Model
	keys     KeyMap
	result   PickerResult
	quitting bool
}

// NewPicker creates a picker over profiles with the current one preselected
func NewPicker(profiles []models.Profile, current string) Model {
	items := make([]list.Item, len(profiles))
	selected := 0
	for i, p := range profiles {
		items[i] = profileItem{profile: p, current: p.Name == current}
		if p.Name == current {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "claudewarp - Select Profile"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	l.Select(selected)

	return Model{list: l, keys: DefaultKeyMap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(profileItem); ok {
				m.result = PickerResult{Action: ActionSwitch, Name: item.profile.Name}
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Reset):
			m.result = PickerResult{Action: ActionSwitch, Name: models.BuiltinName}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit):
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

	help := helpStyle.Render("[enter] Switch  [n] No proxy  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}
