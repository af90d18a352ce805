package results

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
	"github.com/j-veylop/bikeshare-explorer/internal/stats"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/components"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/report"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
)

const labelWidth = 34

// View renders the results screen.
func (m *Model) View() string {
	m.refresh()
	return m.viewport.View()
}

// refresh rebuilds the viewport content from the current outcome,
// keeping the scroll position.
func (m *Model) refresh() {
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(offset)
}

func (m *Model) render() string {
	if err := m.state.Err(); err != nil {
		return m.renderError(err)
	}

	r := m.state.Result()
	if r == nil {
		return styles.CenterHorizontal(styles.HelpStyle.Render("No results yet. Choose a city, month and day."), m.width)
	}

	sections := []string{m.renderHeader(r)}

	if r.Table == nil || r.Table.Empty() {
		sections = append(sections, styles.WarningTextStyle.Render("No trips match this selection."), "")
	} else {
		sections = append(sections, m.renderChartCard(r))
	}

	for _, s := range report.Sections(r) {
		if s.Title == "User Stats" {
			sections = append(sections, m.renderUserCard(s, r.Users))
			continue
		}
		sections = append(sections, m.renderSectionCard(s))
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderError(err error) string {
	q := m.state.Query()
	rows := []string{
		styles.ErrorTextStyle.Render(fmt.Sprintf("Could not compute statistics for %s", config.DisplayCity(q.City))),
		"",
		styles.ValueStyle.Render(err.Error()),
		"",
		styles.HelpStyle.Render("Press n to start a new query or R to try again."),
	}
	return styles.DocStyle.Render(
		styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
}

func (m *Model) renderHeader(r *services.Result) string {
	trips := 0
	if r.Table != nil {
		trips = r.Table.Len()
	}

	title := styles.TitleStyle.Render(fmt.Sprintf("%s: %d trips", config.DisplayCity(r.Query.City), trips))
	subtitle := fmt.Sprintf("month: %s, day: %s, loaded in %s",
		r.Query.Month, r.Query.Day, formatElapsed(r.Elapsed(services.StageLoad)+r.Elapsed(services.StageFilter)))

	rows := []string{title, styles.HelpStyle.Render(subtitle)}
	if m.state.IsStale() {
		rows = append(rows, styles.WarningTextStyle.Render("The dataset changed on disk. Press R to reload."))
	}
	rows = append(rows, "")

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderChartCard(r *services.Result) string {
	width := m.cardWidth() - 12
	rows := []string{
		styles.CardTitleStyle.Render("Trips by Hour"),
		"",
		components.RenderHourlyChart(r.Time.HourlySeries(), width, 8),
		"",
		components.RenderHourlyHeatmap(r.Time.HourlySeries()),
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderSectionCard(s report.Section) string {
	rows := []string{m.renderSectionTitle(s), ""}
	for _, g := range s.Groups {
		rows = append(rows, m.renderGroup(g)...)
	}
	if s.Err != nil {
		rows = append(rows, styles.WarningTextStyle.Render(report.ErrorText(s.Err)))
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderUserCard(s report.Section, u stats.UserReport) string {
	rows := []string{m.renderSectionTitle(s), ""}

	total := 0
	for _, c := range u.UserTypes {
		total += c.Count
	}
	if len(u.UserTypes) > 0 {
		rows = append(rows, styles.SubTitleStyle.Render("Counts of user types"))
		for _, c := range u.UserTypes {
			rows = append(rows, m.shareBar.View(c.Value, c.Count, total, m.cardWidth()-4))
		}
		rows = append(rows, components.RenderLegend([]components.LegendItem{
			{Label: "Subscriber", Color: styles.GetUserTypeColor("Subscriber")},
			{Label: "Customer", Color: styles.GetUserTypeColor("Customer")},
		}), "")
	}

	genderBars := u.GenderAvailable && len(u.Gender) > 0
	if genderBars {
		values := make([]float64, 0, len(u.Gender))
		labels := make([]string, 0, len(u.Gender))
		for _, c := range u.Gender {
			values = append(values, float64(c.Count))
			labels = append(labels, c.Value)
		}
		rows = append(rows, styles.SubTitleStyle.Render("Counts of gender"))
		rows = append(rows, components.RenderBarChart(values, labels, m.cardWidth()-4), "")
	}

	// Groups the bars above do not cover
	for _, g := range s.Groups {
		switch {
		case g.Title == "Counts of user types" && len(u.UserTypes) > 0:
			continue
		case g.Title == "Counts of gender" && genderBars:
			continue
		}
		rows = append(rows, m.renderGroup(g)...)
	}

	if s.Err != nil {
		rows = append(rows, styles.WarningTextStyle.Render(report.ErrorText(s.Err)))
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderSectionTitle(s report.Section) string {
	return styles.CardTitleStyle.Render(s.Title) + "  " + styles.ElapsedStyle.Render(formatElapsed(s.Elapsed))
}

func (m *Model) renderGroup(g report.Group) []string {
	var rows []string
	if g.Title != "" {
		rows = append(rows, styles.SubTitleStyle.Render(g.Title))
	}
	for _, f := range g.Fields {
		rows = append(rows, renderField(f))
	}
	if len(g.Fields) > 0 {
		rows = append(rows, "")
	}
	return rows
}

func renderField(f stats.Field) string {
	label := styles.LabelStyle.Width(labelWidth).Render(f.Label + ":")
	if f.Value == stats.Unavailable {
		return label + " " + styles.UnavailableStyle.Render(f.Value)
	}
	return label + " " + styles.ValueStyle.Render(f.Value)
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

// formatElapsed renders a duration in seconds with microsecond precision.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.6fs", d.Seconds())
}
