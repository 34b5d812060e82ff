package tui

import (
	"fmt"

	"passata/internal/core/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI for controller and blocks until the user quits.
func Run(controller *session.Controller) error {
	events := controller.Subscribe(16)
	program := tea.NewProgram(New(controller, events), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
