package tui

import (
	"context"

	"kanban-cli/internal/board"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the interactive board. The controller's renderer is replaced for
// the lifetime of the program.
func Run(ctx context.Context, ctrl *board.Controller) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(ctx, ctrl)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
