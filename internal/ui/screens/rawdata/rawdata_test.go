package rawdata

import (
	"context"
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
	"github.com/j-veylop/bikeshare-explorer/internal/ui/report"
)

const washingtonCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-03-06 08:01:00,2017-03-06 08:11:00,600,Canal St,Clark St,Subscriber
2017-03-07 08:01:00,2017-03-07 08:11:00,600,Clark St,Canal St,Subscriber
2017-03-08 08:01:00,2017-03-08 08:11:00,600,State St,Canal St,Customer
2017-04-08 08:01:00,2017-04-08 08:11:00,600,State St,Clark St,Customer
`

func stateFor(t *testing.T, month string) *app.State {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "washington.csv"), []byte(washingtonCSV), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loader := dataset.NewLoader(config.NewCityTable(dir, config.DefaultCityFiles()))
	result, err := services.Run(context.Background(), loader, models.Query{City: "washington", Month: month, Day: "all"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	state := app.NewState()
	state.SetOutcome(result, nil)
	return state
}

func more() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
}

func TestModel_Paging(t *testing.T) {
	m := New(stateFor(t, "march"), 2)
	m.SetSize(120, 30)

	m.Update(app.ShowRawMsg{})
	if m.Shown() != 2 || m.Done() {
		t.Fatalf("after first page: shown=%d done=%v, want 2 false", m.Shown(), m.Done())
	}
	if !strings.Contains(m.View(), "Press r for the next 2 rows") {
		t.Error("View should offer more rows")
	}

	m.Update(more())
	if m.Shown() != 3 || !m.Done() {
		t.Fatalf("after second page: shown=%d done=%v, want 3 true", m.Shown(), m.Done())
	}

	view := m.View()
	if !strings.Contains(view, report.EndOfData) {
		t.Error("View should show the end of data marker")
	}
	if !strings.Contains(view, "showing 3 of 3 rows") {
		t.Error("View should count the rows shown")
	}
	if !strings.Contains(view, "State St") {
		t.Error("View should render the row cells")
	}

	// stays at the end
	m.Update(more())
	if m.Shown() != 3 {
		t.Errorf("shown = %d after the end, want 3", m.Shown())
	}
}

func TestModel_ShowRawResets(t *testing.T) {
	m := New(stateFor(t, "all"), 1)
	m.SetSize(120, 30)

	m.Update(app.ShowRawMsg{})
	m.Update(more())
	m.Update(more())
	if m.Shown() != 3 {
		t.Fatalf("shown = %d, want 3", m.Shown())
	}

	m.Update(app.ShowRawMsg{})
	if m.Shown() != 1 || m.Done() {
		t.Errorf("after reset: shown=%d done=%v, want 1 false", m.Shown(), m.Done())
	}
}

func TestModel_EmptySelection(t *testing.T) {
	m := New(stateFor(t, "june"), 5)
	m.SetSize(80, 20)

	m.Update(app.ShowRawMsg{})
	if m.Shown() != 0 || !m.Done() {
		t.Errorf("shown=%d done=%v, want 0 true", m.Shown(), m.Done())
	}
	if !strings.Contains(m.View(), report.EndOfData) {
		t.Error("View should show the end of data marker")
	}
}

func TestModel_NoResult(t *testing.T) {
	m := New(app.NewState(), 0)
	m.Update(app.ShowRawMsg{})
	if !m.Done() {
		t.Error("should be done without a result")
	}
	if m.pageSize != 1 {
		t.Errorf("pageSize = %d, want it clamped to 1", m.pageSize)
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) != 1 {
		t.Error("ShortHelp should list the more binding")
	}
}
