package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// elapsedAfter is how long a fetch runs before the spinner shows its age.
const elapsedAfter = time.Second

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type fetchDoneMsg[T any] struct {
	result T
	err    error
}

// fetchSpinnerModel animates while one fetch runs. When the fetch succeeds
// and a summary is set, the summary line replaces the spinner.
type fetchSpinnerModel[T any] struct {
	spinner spinner.Model
	label   string
	started time.Time
	fetch   tea.Cmd
	summary func(T) string

	result T
	err    error
	done   bool
}

func newFetchSpinnerModel[T any](label string, fetch tea.Cmd, summary func(T) string) fetchSpinnerModel[T] {
	return fetchSpinnerModel[T]{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		started: time.Now(),
		fetch:   fetch,
		summary: summary,
	}
}

func (m fetchSpinnerModel[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m fetchSpinnerModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchDoneMsg[T]:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m fetchSpinnerModel[T]) View() string {
	if m.done {
		if m.err != nil || m.summary == nil {
			return ""
		}
		return summaryStyle.Render(m.summary(m.result)) + "\n"
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if elapsed := time.Since(m.started); elapsed >= elapsedAfter {
		line += fmt.Sprintf(" (%ds)", int(elapsed.Seconds()))
	}
	return line
}

// runFetchSpinner runs fetch while a spinner labelled label animates on
// output. summary may be nil; otherwise its line is left on output after a
// successful fetch. The result and error of fetch are returned as is.
func runFetchSpinner[T any](ctx context.Context, output io.Writer, label string, fetch func(context.Context) (T, error), summary func(T) string) (T, error) {
	var zero T

	fetchCmd := func() tea.Msg {
		result, err := fetch(ctx)
		return fetchDoneMsg[T]{result: result, err: err}
	}

	p := tea.NewProgram(
		newFetchSpinnerModel(label, fetchCmd, summary),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return zero, err
	}

	result, ok := finalModel.(fetchSpinnerModel[T])
	if !ok {
		return zero, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.result, result.err
}

// formatSize renders a byte count with binary units.
func formatSize(bytes int) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
