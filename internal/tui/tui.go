package tui

import (
	"fmt"
	"os"

	"claudewarp/config/models"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// RunPicker shows the profile picker and returns the user's choice
func RunPicker(profiles []models.Profile, current string) (PickerResult, error) {
	// Check if we're running in a terminal
	if !IsTerminal() {
		return PickerResult{}, fmt.Errorf("the profile picker requires a terminal; pass a profile name instead")
	}
	if len(profiles) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	p := tea.NewProgram(NewPicker(profiles, current), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}
	return finalModel.(Model).Result(), nil
}

// IsTerminal checks if stdin is a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
