// Package tui is the interactive terminal front end of the Today Dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yukikurage/followup-tasks/internal/dashboard"
	"github.com/yukikurage/followup-tasks/internal/models"
)

// RefreshMsg asks the model to reload today's tasks.
type RefreshMsg struct{}

type loadedMsg struct {
	seq   uint64
	tasks []models.Task
	err   error
}

type completedMsg struct {
	id  string
	err error
}

// Model is the bubbletea model wrapping a dashboard.Dashboard. All
// dashboard state changes happen in Update; store I/O runs in commands.
type Model struct {
	ctx  context.Context
	dash *dashboard.Dashboard
	loc  *time.Location

	table   table.Model
	spinner spinner.Model
	rows    []dashboard.Row

	width    int
	height   int
	quitting bool
}

// New creates the model. loc controls how due times are displayed.
func New(ctx context.Context, dash *dashboard.Dashboard, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}

	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		ctx:     ctx,
		dash:    dash,
		loc:     loc,
		table:   t,
		spinner: s,
	}
}

func columns() []table.Column {
	widths := []int{10, 24, 8, 10, 15}
	cols := make([]table.Column, len(dashboard.Headers))
	for i, h := range dashboard.Headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	return cols
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RefreshMsg:
		if m.dash.Loading() {
			return m, nil
		}
		return m, m.load()

	case loadedMsg:
		if m.dash.FinishLoad(msg.seq, msg.tasks, msg.err) {
			m.syncRows()
		}
		return m, nil

	case completedMsg:
		if m.dash.FinishComplete(msg.id, msg.err) {
			return m, m.load()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The alert is modal: nothing else reacts until it is dismissed.
	if m.dash.Alert() != "" {
		switch msg.String() {
		case "enter", "esc":
			m.dash.DismissAlert()
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m, m.load()

	case "enter", "c":
		if row, ok := m.Selected(); ok {
			return m, m.complete(row.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the row under the cursor.
func (m Model) Selected() (dashboard.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return dashboard.Row{}, false
	}
	return m.rows[i], true
}

// Rows returns the rows currently displayed.
func (m Model) Rows() []dashboard.Row { return m.rows }

func (m *Model) syncRows() {
	m.rows = dashboard.Rows(m.dash.Tasks(), m.loc)

	trs := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		trs[i] = r.Cells()
	}
	m.table.SetRows(trs)

	if n := len(m.rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

// load starts a new load. Any load still in flight is superseded and its
// reply ignored.
func (m Model) load() tea.Cmd {
	req := m.dash.BeginLoad()
	ctx, dash := m.ctx, m.dash
	return func() tea.Msg {
		tasks, err := dash.Fetch(ctx, req)
		return loadedMsg{seq: req.Seq, tasks: tasks, err: err}
	}
}

func (m Model) complete(id string) tea.Cmd {
	ctx, dash := m.ctx, m.dash
	return func() tea.Msg {
		return completedMsg{id: id, err: dash.CompleteTask(ctx, id)}
	}
}

// Run starts the program and blocks until it exits. onStart receives the
// program so callers can Send messages into it.
func Run(m Model, onStart func(*tea.Program), opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)
	if onStart != nil {
		onStart(p)
	}
	_, err := p.Run()
	return err
}
