// Package picker provides the single-choice list used for the city,
// month and day steps.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// Option is one entry of the list.
type Option struct {
	Label string
	Value string
}

// keyMap defines the key bindings specific to the picker.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Select key.Binding
}

// defaultKeyMap returns the default key bindings for the picker.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
	}
}

// Model is a list of options with a cursor.
type Model struct {
	title    string
	prompt   string
	options  []Option
	cursor   int
	onSelect func(value string) tea.Msg
	keys     keyMap
	width    int
	height   int
}

// New creates a picker. onSelect builds the message sent when an option
// is chosen.
func New(title, prompt string, options []Option, onSelect func(value string) tea.Msg) *Model {
	return &Model{
		title:    title,
		prompt:   prompt,
		options:  options,
		onSelect: onSelect,
		keys:     defaultKeyMap(),
	}
}

// NewCity creates the city step.
func NewCity(cities []string) *Model {
	return New("City", "Would you like to see data for Chicago, New York City, or Washington?",
		CityOptions(cities),
		func(v string) tea.Msg { return app.CitySelectedMsg{City: v} })
}

// NewMonth creates the month step.
func NewMonth() *Model {
	return New("Month", "Which month? Pick all to apply no month filter.",
		MonthOptions(),
		func(v string) tea.Msg { return app.MonthSelectedMsg{Month: v} })
}

// NewDay creates the day step.
func NewDay() *Model {
	return New("Day", "Which day of the week? Pick all to apply no day filter.",
		DayOptions(),
		func(v string) tea.Msg { return app.DaySelectedMsg{Day: v} })
}

// CityOptions lists the configured cities by display name.
func CityOptions(cities []string) []Option {
	options := make([]Option, 0, len(cities))
	for _, c := range cities {
		options = append(options, Option{Label: config.DisplayCity(c), Value: c})
	}
	return options
}

// MonthOptions lists "all" followed by every month.
func MonthOptions() []Option {
	return titled(append([]string{models.All}, models.Months...))
}

// DayOptions lists "all" followed by the days of the week.
func DayOptions() []Option {
	return titled(append([]string{models.All}, models.Days...))
}

func titled(values []string) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Label: strings.ToUpper(v[:1]) + v[1:], Value: v})
	}
	return options
}

// Init initializes the picker.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m *Model) Update(msg tea.Msg) (app.Screen, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.First):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Last):
		m.cursor = len(m.options) - 1
	case key.Matches(keyMsg, m.keys.Select):
		value := m.options[m.cursor].Value
		return m, func() tea.Msg { return m.onSelect(value) }
	}

	return m, nil
}

// Selected returns the option under the cursor.
func (m *Model) Selected() (Option, bool) {
	if len(m.options) == 0 {
		return Option{}, false
	}
	return m.options[m.cursor], true
}

// View renders the picker.
func (m *Model) View() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render(m.title))
	rows = append(rows, styles.HelpStyle.Render(m.prompt))
	rows = append(rows, "")

	if len(m.options) == 0 {
		rows = append(rows, styles.WarningTextStyle.Render("No datasets configured"))
	}

	for i, o := range m.options {
		if i == m.cursor {
			rows = append(rows, styles.SelectedListItemStyle.Render("> "+o.Label))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(o.Label))
		}
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize sets the available size for the picker.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select}
}
