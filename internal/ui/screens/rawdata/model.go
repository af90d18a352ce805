// Package rawdata provides the screen that pages through raw trip rows.
package rawdata

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/report"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// keyMap defines the key bindings specific to the raw data screen.
type keyMap struct {
	More key.Binding
}

// defaultKeyMap returns the default key bindings for the raw data screen.
func defaultKeyMap() keyMap {
	return keyMap{
		More: key.NewBinding(
			key.WithKeys("r", " ", "enter"),
			key.WithHelp("r/space", "more rows"),
		),
	}
}

// Model shows the filtered rows a page at a time. Pages accumulate so
// earlier rows stay reachable.
type Model struct {
	state    *app.State
	pageSize int
	table    table.Model
	keys     keyMap

	header []string
	rows   [][]string
	offset int
	done   bool
	err    error

	width  int
	height int
}

// New creates a raw data screen showing pageSize rows per step.
func New(state *app.State, pageSize int) *Model {
	return &Model{
		state:    state,
		pageSize: max(pageSize, 1),
		table:    components.NewRawTable(),
		keys:     defaultKeyMap(),
	}
}

// Init initializes the raw data screen.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the raw data screen.
func (m *Model) Update(msg tea.Msg) (app.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case app.ShowRawMsg:
		m.reset()
		m.nextPage()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.More) {
			m.nextPage()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) reset() {
	m.header = nil
	m.rows = nil
	m.offset = 0
	m.done = false
	m.err = nil
	m.table.SetRows(nil)
}

// nextPage appends the next page of rows. It does nothing once the end
// of the data has been reached.
func (m *Model) nextPage() {
	if m.done {
		return
	}

	r := m.state.Result()
	if r == nil || r.Table == nil {
		m.done = true
		return
	}

	p, err := r.Table.Page(m.offset, m.pageSize)
	if err != nil {
		logger.Error("failed to read raw rows", "offset", m.offset, "error", err)
		m.err = err
		m.done = true
		return
	}

	m.header = p.Header
	m.rows = append(m.rows, p.Rows...)
	m.offset += len(p.Rows)
	m.done = p.Done
	m.updateTable()
	m.table.GotoBottom()
}

func (m *Model) updateTable() {
	columns := components.RawColumns(m.header, m.rows, m.width)
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(components.RawRows(columns, m.rows))
}

// Shown returns how many rows have been paged in.
func (m *Model) Shown() int {
	return len(m.rows)
}

// Done reports whether every row has been shown.
func (m *Model) Done() bool {
	return m.done
}

// View renders the raw data screen.
func (m *Model) View() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Raw data"))

	total := 0
	if r := m.state.Result(); r != nil && r.Table != nil {
		total = r.Table.Len()
	}
	rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("showing %d of %d rows", len(m.rows), total)))
	if total > 0 {
		rows = append(rows, components.SimpleShareBar(components.Percent(len(m.rows), total), "shown", max(m.width-8, 30)))
	}
	rows = append(rows, "")

	if len(m.rows) > 0 {
		rows = append(rows, m.table.View())
		rows = append(rows, "")
	}

	switch {
	case m.err != nil:
		rows = append(rows, styles.ErrorTextStyle.Render(m.err.Error()))
	case m.done:
		rows = append(rows, styles.InfoTextStyle.Render(report.EndOfData))
	default:
		rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("Press r for the next %d rows, esc to go back.", m.pageSize)))
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize sets the available size for the raw data screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(max(width-4, 20))
	m.table.SetHeight(max(height-6, 3))
	if len(m.rows) > 0 {
		m.updateTable()
	}
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.More}
}
