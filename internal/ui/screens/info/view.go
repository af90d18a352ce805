package info

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/ui/styles"
	"github.com/j-veylop/bikeshare-explorer/internal/version"
)

// View renders the info screen.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetsCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		watch := "off"
		switch {
		case m.watching:
			watch = "on"
		case m.config.Watch:
			watch = "unavailable"
		}
		logFile := m.config.LogFile
		if logFile == "" {
			logFile = "none"
		}

		rows = append(rows, renderRow("Data Directory", m.config.DataDir))
		rows = append(rows, renderRow("Page Size", fmt.Sprintf("%d rows", m.config.PageSize)))
		rows = append(rows, renderRow("Watch Datasets", watch))
		rows = append(rows, renderRow("Log Level", m.config.LogLevel.String()))
		rows = append(rows, renderRow("Log File", logFile))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderDatasetsCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Datasets"))
	rows = append(rows, "")

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("No datasets configured"))
	} else {
		for _, city := range m.config.Cities.Cities() {
			path, _ := m.config.Cities.Path(city)
			status := styles.SuccessTextStyle.Render("found")
			if _, err := os.Stat(path); err != nil {
				status = styles.ErrorTextStyle.Render("missing")
			}
			rows = append(rows, renderRow(config.DisplayCity(city), path+" "+status))
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Bikeshare Explorer"))
	rows = append(rows, "")

	rows = append(rows, renderRow("Version", version.GetVersion()))
	rows = append(rows, renderRow("Build Date", version.GetDate()))
	rows = append(rows, renderRow("Git Commit", version.GetCommit()))
	rows = append(rows, renderRow("Go Version", runtime.Version()))
	rows = append(rows, renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
