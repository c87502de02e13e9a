package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func newLoadingSpinner(style lipgloss.Style) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Spinner{Frames: spinnerFrames, FPS: 120 * time.Millisecond}),
		spinner.WithStyle(style),
	)
}

// renderLoading renders the loading indicator line.
func (v *DataView) renderLoading() string {
	return v.spinner.View() + " " + v.theme.Loading.Render(loadingText)
}
