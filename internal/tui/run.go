package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx ends.
func Run(ctx context.Context, opts ...Option) error {
	m, err := New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
