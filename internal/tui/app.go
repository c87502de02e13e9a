package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model. It owns the window size and quit
// keys and forwards everything else to its page.
type App struct {
	page   Page
	width  int
	height int
}

// NewApp creates an App showing page.
func NewApp(page Page) *App {
	return &App{page: page}
}

func (a *App) Init() tea.Cmd {
	if a.page == nil {
		return nil
	}
	return a.page.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		}
	}

	if a.page == nil {
		return a, nil
	}
	return a, a.page.Update(msg)
}

func (a *App) View() string {
	if a.page == nil {
		return "No active page"
	}
	return a.page.View(a.width, a.height)
}
