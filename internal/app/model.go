package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

// ScreenID represents the identifier for a screen in the application.
type ScreenID int

const (
	// ScreenCity asks for the city.
	ScreenCity ScreenID = iota
	// ScreenMonth asks for the month selector.
	ScreenMonth
	// ScreenDay asks for the day selector.
	ScreenDay
	// ScreenResults shows the four reports.
	ScreenResults
	// ScreenRaw pages through raw rows.
	ScreenRaw
	// ScreenInfo shows configuration and version.
	ScreenInfo

	screenCount
)

// String returns the string representation of the ScreenID.
func (s ScreenID) String() string {
	switch s {
	case ScreenCity:
		return "City"
	case ScreenMonth:
		return "Month"
	case ScreenDay:
		return "Day"
	case ScreenResults:
		return "Results"
	case ScreenRaw:
		return "Raw data"
	case ScreenInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Screen defines the interface that all screens must implement.
type Screen interface {
	// Init initializes the screen and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and any commands.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content.
	View() string

	// SetSize sets the available size for the screen.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the footer.
	ShortHelp() []key.Binding
}

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Back    key.Binding
	Restart key.Binding
	Raw     key.Binding
	Reload  key.Binding
	Info    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Restart: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new query")),
		Raw:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raw data")),
		Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Restart, k.Quit}
}

// Styles defines the application styles.
type Styles struct {
	Navbar       lipgloss.Style
	ActiveStep   lipgloss.Style
	InactiveStep lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Help    lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#00875F", Dark: "#00AF87"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.Navbar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveStep = styles.StepActiveStyle
	s.InactiveStep = styles.StepInactiveStyle

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Help = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)
	s.Toast = styles.ToastStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(highlight)

	return s
}

// Model is the main application model.
type Model struct {
	active   ScreenID
	previous ScreenID
	screens  []Screen

	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	spinner components.LoadingSpinner

	width  int
	height int

	showHelp bool
	ready    bool

	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	return &Model{
		active:   ScreenCity,
		screens:  make([]Screen, screenCount), // set externally
		state:    NewState(),
		services: mgr,
		keymap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
		spinner:  components.NewSpinner("Starting..."),
	}
}

// SetScreen installs the screen shown for id.
func (m *Model) SetScreen(id ScreenID, screen Screen) {
	m.screens[id] = screen
	if m.width > 0 && m.height > 0 {
		m.updateScreenSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetKeyMap returns the key bindings.
func (m *Model) GetKeyMap() KeyMap {
	return m.keymap
}

// ActiveScreen returns the currently shown screen ID.
func (m *Model) ActiveScreen() ScreenID {
	return m.active
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick(),
		tickCmd(DefaultTickInterval),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	for _, screen := range m.screens {
		if screen != nil {
			cmds = append(cmds, screen.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateScreenSizes()

	case tea.KeyMsg:
		if cmd, handled := m.handleKeyMsg(msg); handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveScreen(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, tickCmd(DefaultTickInterval))
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case CitySelectedMsg:
		m.state.SetCity(msg.City)
		m.switchTo(ScreenMonth)
	case MonthSelectedMsg:
		m.state.SetMonth(msg.Month)
		m.switchTo(ScreenDay)
	case DaySelectedMsg:
		m.state.SetDay(msg.Day)
		cmds = append(cmds, m.startPipeline())
	case PipelineDoneMsg:
		cmds = append(cmds, m.handlePipelineDone(msg))
	case ScreenSwitchMsg:
		m.switchTo(msg.Screen)
	case RestartMsg:
		m.restart()
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ErrorMsg:
		cmds = append(cmds, NotifyError(fmt.Sprintf("%s: %v", msg.Context, msg.Error)))
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) startPipeline() tea.Cmd {
	q := m.state.Query()
	m.state.StartLoading()
	m.spinner.SetLabel(fmt.Sprintf("Loading %s trips...", config.DisplayCity(q.City)))
	m.switchTo(ScreenResults)

	if m.services == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick(), runPipelineCmd(m.services, q))
}

func (m *Model) handlePipelineDone(msg PipelineDoneMsg) tea.Cmd {
	m.state.SetOutcome(msg.Result, msg.Err)
	if msg.Err != nil {
		logger.Warn("pipeline failed", "query", m.state.Query().String(), "error", msg.Err)
		return NotifyError("Could not compute statistics")
	}
	return nil
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.DatasetChangedEvent:
		if m.state.MarkStale(e.City) {
			return NotifyWarning(fmt.Sprintf("%s data changed on disk, press R to reload", config.DisplayCity(e.City)))
		}
	case services.ErrorEvent:
		return NotifyError(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

func (m *Model) switchTo(id ScreenID) {
	if id == m.active {
		return
	}
	m.previous = m.active
	m.active = id
}

func (m *Model) restart() {
	m.state.Reset()
	m.showHelp = false
	m.switchTo(ScreenCity)
}

func (m *Model) hasOutcome() bool {
	return m.state.Result() != nil || m.state.Err() != nil
}

func (m *Model) updateActiveScreen(msg tea.Msg) tea.Cmd {
	if screen := m.screens[m.active]; screen != nil {
		var cmd tea.Cmd
		m.screens[m.active], cmd = screen.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateScreenSizes() {
	contentHeight := max(m.height-5, 0)

	for _, screen := range m.screens {
		if screen != nil {
			screen.SetSize(m.width, contentHeight)
		}
	}
}

// handleKeyMsg handles global keys. Keys it does not handle go to the
// active screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case m.showHelp && key.Matches(msg, m.keymap.Back):
		m.showHelp = false
		return nil, true

	case m.state.IsLoading():
		return nil, true

	case key.Matches(msg, m.keymap.Back):
		m.back()
		return nil, true

	case key.Matches(msg, m.keymap.Info):
		if m.active == ScreenInfo {
			m.switchTo(m.previous)
		} else {
			m.switchTo(ScreenInfo)
		}
		return nil, true

	case key.Matches(msg, m.keymap.Restart):
		m.restart()
		return nil, true

	case m.active == ScreenResults && key.Matches(msg, m.keymap.Raw):
		if m.state.Result() == nil {
			return nil, true
		}
		m.switchTo(ScreenRaw)
		return func() tea.Msg { return ShowRawMsg{} }, true

	case m.active >= ScreenResults && key.Matches(msg, m.keymap.Reload):
		if !m.hasOutcome() {
			return nil, true
		}
		return m.startPipeline(), true
	}

	return nil, false
}

// back returns to the previous step of the selection flow.
func (m *Model) back() {
	switch m.active {
	case ScreenMonth:
		m.switchTo(ScreenCity)
	case ScreenDay:
		m.switchTo(ScreenMonth)
	case ScreenRaw:
		m.switchTo(ScreenResults)
	case ScreenInfo:
		m.switchTo(m.previous)
	}
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	var content string
	switch {
	case !m.ready:
		b.WriteString(m.styles.Content.Render(m.spinner.ViewWithLabel()))
		return b.String()
	case m.state.IsLoading():
		content = m.renderLoading()
	case m.screens[m.active] != nil:
		content = m.screens[m.active].View()
	default:
		content = m.renderPlaceholder()
	}

	footer := m.renderFooter()

	// Keep the footer on the last terminal row
	used := lipgloss.Height(b.String()) - 1 + lipgloss.Height(content) + lipgloss.Height(footer)
	if gap := m.height - used; gap > 0 {
		content += strings.Repeat("\n", gap)
	}

	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(footer)

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, max(m.height-5, 1))
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(mainLines) < m.height {
		mainLines = append(mainLines, "")
	}

	overlayWidth := lipgloss.Width(overlay)

	// Calculate center position
	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		// Keep what lies left and right of the overlay
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

// renderNavbar shows the query built so far as a row of steps.
func (m *Model) renderNavbar() string {
	q := m.state.Query()
	city := "-"
	if q.City != "" {
		city = config.DisplayCity(q.City)
	}

	steps := []struct {
		id    ScreenID
		label string
	}{
		{ScreenCity, "City: " + city},
		{ScreenMonth, "Month: " + q.Month},
		{ScreenDay, "Day: " + q.Day},
		{ScreenResults, "Results"},
	}

	var parts []string
	for _, s := range steps {
		active := s.id == m.active || (s.id == ScreenResults && m.active == ScreenRaw)
		if active {
			parts = append(parts, m.styles.ActiveStep.Render(s.label))
		} else {
			parts = append(parts, m.styles.InactiveStep.Render(s.label))
		}
	}
	if m.state.IsStale() {
		parts = append(parts, styles.WarningTextStyle.Render(" stale"))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return m.styles.Navbar.Width(m.width).Render(bar)
}

func (m *Model) renderFooter() string {
	var bindings []key.Binding
	if screen := m.screens[m.active]; screen != nil {
		bindings = append(bindings, screen.ShortHelp()...)
	}
	if m.active == ScreenResults && m.state.Result() != nil {
		bindings = append(bindings, m.keymap.Raw, m.keymap.Reload)
	}
	bindings = append(bindings, m.keymap.ShortHelp()...)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	return m.styles.Help.Render(strings.Join(parts, "  "))
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	startX := max(m.width-lipgloss.Width(toastStack)-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-mainLineWidth) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Selection"))
	lines = append(lines, "  j/k, ↑/↓   Move up/down")
	lines = append(lines, "  Enter      Choose")
	lines = append(lines, "  Esc        Previous step")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Results"))
	lines = append(lines, "  r          Show raw data, then the next rows")
	lines = append(lines, "  R          Reload the current query")
	lines = append(lines, "  n          Start a new query")
	lines = append(lines, "  i          Configuration and version")
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("General"))
	lines = append(lines, "  ?          Toggle help")
	lines = append(lines, "  q/Ctrl+C   Quit")
	lines = append(lines, "")

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf("%s\n\n%s",
		m.active,
		m.styles.Subtle.Render("Nothing to show here yet."),
	)
	return m.styles.Content.Render(content)
}
