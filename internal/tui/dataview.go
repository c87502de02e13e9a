package tui

import (
	"context"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/tinytelemetry/dataview/internal/model"
)

const loadingText = model.LoadingText

// Fetcher reads the backend message.
type Fetcher interface {
	FetchMessage(ctx context.Context) (string, error)
	Endpoint() string
}

// fetchResultMsg carries the settled outcome of the fetch back to Update.
type fetchResultMsg struct {
	message string
	err     error
}

// DataView fetches the backend message once when mounted and renders it
// next to the configuration value.
type DataView struct {
	ctx     context.Context
	fetcher Fetcher
	config  model.ConfigValue
	diag    *zap.Logger
	theme   Theme

	state   model.DisplayState
	spinner spinner.Model

	// loadingShown and loadingCleared count indicator transitions. Nothing
	// renders them; they exist so the show/clear ordering can be observed.
	loadingShown   int
	loadingCleared int
}

// NewDataView creates the view. ctx bounds the fetch; it is the program's
// context and is not cancelled when the view goes away. A nil diag discards
// diagnostics.
func NewDataView(ctx context.Context, fetcher Fetcher, cfg model.ConfigValue, diag *zap.Logger, theme Theme) *DataView {
	if ctx == nil {
		ctx = context.Background()
	}
	if diag == nil {
		diag = zap.NewNop()
	}
	return &DataView{
		ctx:     ctx,
		fetcher: fetcher,
		config:  cfg,
		diag:    diag,
		theme:   theme,
		state:   model.Loading{},
		spinner: newLoadingSpinner(theme.Spinner),
	}
}

func (v *DataView) ID() string { return "dataview" }

// State returns the current display state.
func (v *DataView) State() model.DisplayState { return v.state }

// Init mounts the view and starts the fetch.
func (v *DataView) Init() tea.Cmd {
	return tea.Batch(v.mount(), v.spinner.Tick)
}

// mount enters Loading and returns the single fetch command.
func (v *DataView) mount() tea.Cmd {
	v.state = model.Loading{}
	v.loadingShown++
	fetcher, ctx := v.fetcher, v.ctx
	return func() tea.Msg {
		msg, err := fetcher.FetchMessage(ctx)
		return fetchResultMsg{message: msg, err: err}
	}
}

func (v *DataView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchResultMsg:
		v.settle(msg)
		return nil
	case spinner.TickMsg:
		if v.state.Resolved() {
			return nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return cmd
	}
	return nil
}

// settle applies the fetch outcome. Only the first outcome counts.
func (v *DataView) settle(msg fetchResultMsg) {
	if v.state.Resolved() {
		return
	}
	if msg.err != nil {
		v.diag.Error("error fetching data",
			zap.String("endpoint", v.fetcher.Endpoint()),
			zap.Error(msg.err),
		)
		v.state = model.Failed{Placeholder: model.FetchErrorPlaceholder}
	} else {
		v.state = model.Loaded{Message: msg.message}
	}
	v.loadingCleared++
}

// statusText is the card text for a resolved state.
func (v *DataView) statusText() string {
	switch st := v.state.(type) {
	case model.Loaded:
		return model.MessageLabel + sanitize(st.Message)
	case model.Failed:
		return model.MessageLabel + st.Placeholder
	}
	return ""
}

func (v *DataView) View(width, height int) string {
	var card string
	switch v.state.(type) {
	case model.Loading:
		card = v.renderLoading()
	case model.Failed:
		card = v.theme.Error.Render(v.statusText())
	default:
		card = v.theme.Message.Render(v.statusText())
	}

	cardStyle := v.theme.Card
	if width > 4 {
		cardStyle = cardStyle.MaxWidth(width)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		v.theme.Title.Render(model.Title),
		cardStyle.Render(card),
		v.theme.Config.Render(string(v.config)),
	)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// PlainView renders the view without styles, one area per line.
func (v *DataView) PlainView() string {
	status := loadingText
	if v.state.Resolved() {
		status = v.statusText()
	}
	return strings.Join([]string{model.Title, status, string(v.config)}, "\n") + "\n"
}

// sanitize drops escape sequences and control characters so backend text
// cannot drive the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}
