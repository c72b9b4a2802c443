package portal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyumbanet/portal-cli/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// runOneShot drives a short-lived bubbletea program to completion and hands
// the final model back with its concrete type restored.
func runOneShot[T tea.Model](m T, opts ...tea.ProgramOption) (T, error) {
	var zero T

	finalModel, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return zero, err
	}

	final, ok := finalModel.(T)
	if !ok {
		return zero, ErrUnexpectedRenderModel
	}
	return final, nil
}

type dashboardModel struct {
	snapshot application.Snapshot
	opts     RenderOptions
	output   string
}

func (m dashboardModel) Init() tea.Cmd {
	return func() tea.Msg { return struct{}{} }
}

func (m dashboardModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	m.output = Dashboard(m.snapshot, m.opts)
	return m, tea.Quit
}

func (m dashboardModel) View() string {
	return m.output
}

// Render produces the dashboard through a one-shot program so color profile
// detection matches the interactive UI.
func Render(snapshot application.Snapshot, opts RenderOptions) (string, error) {
	final, err := runOneShot(
		dashboardModel{snapshot: snapshot, opts: opts},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)
	if err != nil {
		return "", err
	}
	return final.output, nil
}

type progressDoneMsg struct{ err error }

// progressModel keeps a spinner moving while a blocking fetch runs, so a slow
// backend shows feedback instead of a frozen prompt.
type progressModel struct {
	spinner  spinner.Model
	styles   styles
	label    string
	start    tea.Cmd
	err      error
	finished bool
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progressDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.styles.meta.Render(m.label))
}

// WithProgress runs fn under a spinner written to output and returns fn's
// error. Cancellation rides the context.
func WithProgress(ctx context.Context, output io.Writer, label string, fn func(context.Context) error) error {
	s := newStyles()
	model := progressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.barFill),
		),
		styles: s,
		label:  label,
		start: func() tea.Msg {
			return progressDoneMsg{err: fn(ctx)}
		},
	}

	final, err := runOneShot(model,
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	return final.err
}
