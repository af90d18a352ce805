package results

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-explorer/internal/app"
	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-03-06 08:01:00,2017-03-06 08:11:00,600,Canal St,Clark St,Subscriber,Male,1985.0
2,2017-03-07 17:30:00,2017-03-07 17:40:00,600,Canal St,Clark St,Subscriber,Female,1990.0
3,2017-03-11 12:00:00,2017-03-11 12:20:00,1200,Clark St,Canal St,Customer,,
`

const washingtonCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-03-06 08:01:00,2017-03-06 08:11:00,600,Canal St,Clark St,Subscriber
`

func runQuery(t *testing.T, q models.Query) *app.State {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{"chicago.csv": chicagoCSV, "washington.csv": washingtonCSV} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	loader := dataset.NewLoader(config.NewCityTable(dir, config.DefaultCityFiles()))
	result, err := services.Run(context.Background(), loader, q)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	state := app.NewState()
	state.SetCity(q.City)
	state.SetMonth(q.Month)
	state.SetDay(q.Day)
	state.StartLoading()
	state.SetOutcome(result, nil)
	return state
}

func newModel(state *app.State) *Model {
	m := New(state)
	m.SetSize(120, 400)
	return m
}

func TestModel_ViewNoResult(t *testing.T) {
	m := newModel(app.NewState())
	if !strings.Contains(m.View(), "No results yet") {
		t.Error("View should explain that nothing ran yet")
	}
}

func TestModel_ViewError(t *testing.T) {
	state := app.NewState()
	state.SetCity("chicago")
	state.SetOutcome(nil, errors.New("dataset not found"))

	view := newModel(state).View()
	for _, want := range []string{"Could not compute statistics for Chicago", "dataset not found", "Press n"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_ViewReports(t *testing.T) {
	m := newModel(runQuery(t, models.Query{City: "chicago", Month: "march", Day: "all"}))
	view := m.View()

	for _, want := range []string{
		"Chicago: 3 trips",
		"Trips by Hour",
		"Most Frequent Times of Travel",
		"Most Popular Stations and Trip",
		"Trip Duration",
		"User Stats",
		"Counts of user types",
		"Counts of gender",
		"Birth year stats",
		"Canal St to Clark St",
		"Subscriber",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_ViewUnavailableColumns(t *testing.T) {
	m := newModel(runQuery(t, models.Query{City: "washington", Month: "all", Day: "all"}))
	view := m.View()

	if !strings.Contains(view, "unavailable") {
		t.Error("View should mark gender and birth year as unavailable")
	}
	if strings.Contains(view, "Counts of gender") {
		t.Error("View should not show gender counts without the column")
	}
}

func TestModel_ViewEmptySelection(t *testing.T) {
	m := newModel(runQuery(t, models.Query{City: "chicago", Month: "june", Day: "all"}))
	view := m.View()

	if !strings.Contains(view, "No trips match this selection.") {
		t.Error("View should explain the empty selection")
	}
	if !strings.Contains(view, "Not enough data") {
		t.Error("View should show the insufficient data notes")
	}
}

func TestModel_ViewStale(t *testing.T) {
	state := runQuery(t, models.Query{City: "chicago", Month: "all", Day: "all"})
	state.MarkStale("chicago")

	if !strings.Contains(newModel(state).View(), "changed on disk") {
		t.Error("View should flag stale results")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(runQuery(t, models.Query{City: "chicago", Month: "all", Day: "all"}))
	m.SetSize(80, 5)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.viewport.YOffset == 0 {
		t.Error("G should scroll to the bottom")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.viewport.YOffset != 0 {
		t.Error("g should scroll to the top")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m.Update(app.PipelineDoneMsg{})
	if m.viewport.YOffset != 0 {
		t.Error("a new outcome should scroll to the top")
	}

	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := formatElapsed(1500000); got != "0.001500s" {
		t.Errorf("formatElapsed = %q, want 0.001500s", got)
	}
}
