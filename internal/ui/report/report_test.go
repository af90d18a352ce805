package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
	"github.com/j-veylop/bikeshare-explorer/internal/stats"
)

func newTrip(start, end, userType string, hour int) models.Trip {
	t := models.Trip{
		StartTime:    time.Date(2017, time.March, 6, hour, 0, 0, 0, time.UTC),
		StartStation: start,
		EndStation:   end,
		Duration:     600,
		UserType:     userType,
	}
	t.Derive()
	return t
}

func newResult(columns []string, trips ...models.Trip) *services.Result {
	table := dataset.NewTable("washington", columns, trips)
	r := &services.Result{
		Query: models.Query{City: "washington", Month: "all", Day: "all"},
		Table: table,
	}
	r.Time, r.TimeErr = stats.TimeStats(table)
	r.Station, r.StationErr = stats.StationStats(table)
	r.Duration, r.DurationErr = stats.DurationStats(table)
	r.Users, r.UsersErr = stats.UserStats(table)
	r.Timings = []services.Timing{{Stage: services.StageTime, Elapsed: 1500 * time.Microsecond}}
	return r
}

func sampleResult() *services.Result {
	return newResult(models.RequiredColumns,
		newTrip("Canal St", "Clark St", "Subscriber", 8),
		newTrip("Canal St", "Clark St", "Subscriber", 8),
		newTrip("State St", "Canal St", "Customer", 17),
	)
}

func TestSections(t *testing.T) {
	sections := Sections(sampleResult())
	if len(sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(sections))
	}

	if sections[0].Elapsed != 1500*time.Microsecond {
		t.Errorf("time section elapsed = %v", sections[0].Elapsed)
	}

	users := sections[3]
	if users.Groups[0].Title != "Counts of user types" {
		t.Errorf("first user group = %q", users.Groups[0].Title)
	}
	first := users.Groups[0].Fields[0]
	if first.Label != "Subscriber" || first.Value != "2" {
		t.Errorf("first user type = %+v, want Subscriber 2", first)
	}

	// no Gender or Birth Year columns
	if len(users.Groups) != 3 {
		t.Fatalf("user groups = %d, want 3", len(users.Groups))
	}
	for _, g := range users.Groups[1:] {
		if len(g.Fields) != 1 || g.Fields[0].Value != stats.Unavailable {
			t.Errorf("group %q = %+v, want unavailable", g.Title, g.Fields)
		}
	}
}

func TestSections_EmptyTable(t *testing.T) {
	sections := Sections(newResult(models.RequiredColumns))

	for _, s := range sections[:3] {
		if !errors.Is(s.Err, stats.ErrInsufficientData) {
			t.Errorf("%s error = %v, want ErrInsufficientData", s.Title, s.Err)
		}
	}
	if len(sections[0].Groups[0].Fields) != 0 {
		t.Error("time section should have no fields on error")
	}

	duration := sections[2].Groups[0].Fields
	if len(duration) != 1 || !strings.HasPrefix(duration[0].Value, "0.00") {
		t.Errorf("duration fields = %+v, want total 0", duration)
	}
}

func TestErrorText(t *testing.T) {
	err := &stats.InsufficientDataError{Statistic: "mean trip duration"}
	if got := ErrorText(err); got != "Not enough data to compute the mean trip duration." {
		t.Errorf("ErrorText() = %q", got)
	}
	if got := ErrorText(errors.New("boom")); got != "boom" {
		t.Errorf("ErrorText() = %q", got)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Washington: 3 trips (month: all, day: all)",
		"Calculating Most Frequent Times of Travel...",
		"Calculating User Stats...",
		"Most common trip:",
		"Canal St to Clark St",
		"Counts of user types:",
		"Gender:",
		"unavailable",
		"This took 0.001500 seconds.",
		rule,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteText_ReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, newResult(models.RequiredColumns)); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Not enough data") {
		t.Errorf("output should explain the missing statistics:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteText_WriteError(t *testing.T) {
	if err := WriteText(failingWriter{}, sampleResult()); err == nil {
		t.Error("expected write error")
	}
}

func TestWriteRaw(t *testing.T) {
	trips := make([]models.Trip, 7)
	for i := range trips {
		trips[i] = newTrip("A", "B", "Subscriber", i)
	}
	table := dataset.NewTable("washington", models.RequiredColumns, trips)

	tests := []struct {
		name     string
		limit    int
		wantRows int
		wantEnd  bool
	}{
		{"FirstPage", 5, 5, false},
		{"TwoPages", 7, 7, true},
		{"PastEnd", 20, 7, true},
		{"None", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteRaw(&buf, table, tt.limit, 5); err != nil {
				t.Fatalf("WriteRaw failed: %v", err)
			}
			out := buf.String()

			if got := strings.Count(out, "Subscriber"); got != tt.wantRows {
				t.Errorf("rows = %d, want %d", got, tt.wantRows)
			}
			if got := strings.Contains(out, EndOfData); got != tt.wantEnd {
				t.Errorf("end of data shown = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestWriteRaw_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	table := dataset.NewTable("washington", models.RequiredColumns, nil)
	if err := WriteRaw(&buf, table, 5, 5); err != nil {
		t.Fatalf("WriteRaw failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != EndOfData {
		t.Errorf("output = %q, want only the end marker", buf.String())
	}
}
