package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Run boots the TUI program for page and blocks until it exits.
func Run(ctx context.Context, page Page) error {
	p := tea.NewProgram(NewApp(page), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal (use --no-tui)")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
