package progress

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asamgx/crunchsetup/internal/tui/styles"
)

// Task is one step shown in the progress view
type Task struct {
	Name string
	Run  func(ctx context.Context, onOutput func(line string)) error
}

// TaskDoneMsg is sent when a task finishes
type TaskDoneMsg struct {
	Index int
	Err   error
}

// OutputLineMsg is sent for each line a running task prints
type OutputLineMsg struct {
	Line string
}

// sink forwards output lines into the running program
type sink struct {
	send func(tea.Msg)
}

// Model is the progress UI model. Tasks run strictly one after another;
// the first failure stops the run.
type Model struct {
	ctx            context.Context
	title          string
	tasks          []Task
	current        int
	spinner        spinner.Model
	progress       progress.Model
	err            error
	done           bool
	width          int
	height         int
	outputLines    []string
	maxOutputLines int
	sink           *sink
}

// New creates a new progress model
func New(ctx context.Context, title string, tasks []Task) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return Model{
		ctx:            ctx,
		title:          title,
		tasks:          tasks,
		spinner:        s,
		progress:       progress.New(progress.WithDefaultGradient()),
		maxOutputLines: 8,
		width:          80,
		height:         24,
		sink:           &sink{},
	}
}

// Init starts the first task
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runTask(0),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		// A running script cannot be interrupted.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case OutputLineMsg:
		m.outputLines = append(m.outputLines, msg.Line)
		if len(m.outputLines) > m.maxOutputLines {
			m.outputLines = m.outputLines[len(m.outputLines)-m.maxOutputLines:]
		}
		return m, nil

	case TaskDoneMsg:
		m.outputLines = nil
		if msg.Err != nil {
			m.err = msg.Err
			m.done = true
			return m, tea.Quit
		}

		m.current = msg.Index + 1
		if m.current >= len(m.tasks) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.runTask(m.current)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// runTask returns a command that runs the task at idx
func (m Model) runTask(idx int) tea.Cmd {
	if idx >= len(m.tasks) {
		return tea.Quit
	}

	task := m.tasks[idx]
	ctx := m.ctx
	out := m.sink
	return func() tea.Msg {
		err := task.Run(ctx, func(line string) {
			if out.send != nil {
				out.send(OutputLineMsg{Line: line})
			}
		})
		return TaskDoneMsg{Index: idx, Err: err}
	}
}

// View renders the progress UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n")

	percent := 0.0
	if len(m.tasks) > 0 {
		percent = float64(m.current) / float64(len(m.tasks))
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n\n")

	for i, task := range m.tasks {
		switch {
		case i < m.current:
			b.WriteString(styles.CheckmarkStyle.String())
			b.WriteString(" ")
			b.WriteString(styles.SuccessStyle.Render(task.Name))
		case i == m.current && m.err != nil:
			b.WriteString(styles.CrossStyle.String())
			b.WriteString(" ")
			b.WriteString(styles.ErrorStyle.Render(task.Name))
		case i == m.current && !m.done:
			b.WriteString(m.spinner.View())
			b.WriteString(" ")
			b.WriteString(styles.ActiveStyle.Render(task.Name))
		default:
			b.WriteString(styles.PendingStyle.String())
			b.WriteString(" ")
			b.WriteString(styles.DimmedStyle.Render(task.Name))
		}
		b.WriteString("\n")

		if i == m.current && !m.done {
			for _, line := range m.outputLines {
				b.WriteString(styles.OutputStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// Err returns the error of the failed task, if any
func (m Model) Err() error {
	return m.err
}

// Done returns true once every task finished or one failed
func (m Model) Done() bool {
	return m.done
}

// Completed returns how many tasks finished successfully
func (m Model) Completed() int {
	return m.current
}

// Run shows the progress UI on the terminal while the tasks execute
func Run(ctx context.Context, title string, tasks []Task) error {
	m := New(ctx, title, tasks)
	p := tea.NewProgram(m)
	m.sink.send = p.Send

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress display failed: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}

// RunPlain executes the tasks, writing plain text progress to w
func RunPlain(ctx context.Context, w io.Writer, tasks []Task) error {
	for i, task := range tasks {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(tasks), task.Name)
		err := task.Run(ctx, func(line string) {
			fmt.Fprintf(w, "    %s\n", line)
		})
		if err != nil {
			fmt.Fprintf(w, "[%d/%d] %s failed\n", i+1, len(tasks), task.Name)
			return err
		}
	}
	return nil
}
