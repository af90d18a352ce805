package stats

import (
	"errors"
	"testing"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

func TestTimeStats(t *testing.T) {
	tbl := table(allColumns,
		trip("A", "B", 8, 60, "Subscriber"),
		trip("C", "B", 17, 60, "Subscriber"),
		trip("C", "D", 17, 60, "Customer"),
		trip("A", "D", 8, 60, "Customer"),
		trip("A", "B", 9, 60, "Customer"),
	)

	r, err := TimeStats(tbl)
	if err != nil {
		t.Fatalf("TimeStats() failed: %v", err)
	}

	if r.StartStation != "A" {
		t.Errorf("StartStation = %q, want A", r.StartStation)
	}
	if r.EndStation != "B" {
		t.Errorf("EndStation = %q, want B", r.EndStation)
	}
	// 8 and 17 tie; 8 was seen first
	if r.Hour != 8 {
		t.Errorf("Hour = %d, want 8", r.Hour)
	}
	if r.Month != 3 || r.DayOfWeek != "Monday" {
		t.Errorf("Month/Day = %d/%q, want 3/Monday", r.Month, r.DayOfWeek)
	}
	if r.HourlyTrips[8] != 2 || r.HourlyTrips[17] != 2 || r.HourlyTrips[9] != 1 {
		t.Errorf("HourlyTrips = %v", r.HourlyTrips)
	}
	if len(r.HourlySeries()) != 24 {
		t.Errorf("HourlySeries() has %d points", len(r.HourlySeries()))
	}
	if len(r.Fields()) == 0 {
		t.Error("Fields() is empty")
	}
}

func TestTimeStats_Empty(t *testing.T) {
	_, err := TimeStats(table(allColumns))
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}

	var ide *InsufficientDataError
	if !errors.As(err, &ide) || ide.Statistic == "" {
		t.Errorf("expected InsufficientDataError naming the statistic, got %v", err)
	}
}

func TestStationStats(t *testing.T) {
	tbl := table(allColumns,
		trip("A", "B", 8, 60, "Subscriber"),
		trip("A", "B", 9, 60, "Subscriber"),
	)

	r, err := StationStats(tbl)
	if err != nil {
		t.Fatalf("StationStats() failed: %v", err)
	}
	if r.Trip != "A to B" {
		t.Errorf("Trip = %q, want %q", r.Trip, "A to B")
	}
	if r.TripCount != 2 {
		t.Errorf("TripCount = %d, want 2", r.TripCount)
	}
	if r.StartStation != "A" || r.EndStation != "B" {
		t.Errorf("stations = %q, %q", r.StartStation, r.EndStation)
	}
}

func TestStationStats_TripTieFirstSeen(t *testing.T) {
	tbl := table(allColumns,
		trip("X", "Y", 8, 60, "Subscriber"),
		trip("A", "B", 9, 60, "Subscriber"),
		trip("A", "B", 9, 60, "Subscriber"),
		trip("X", "Y", 8, 60, "Subscriber"),
	)

	r, err := StationStats(tbl)
	if err != nil {
		t.Fatalf("StationStats() failed: %v", err)
	}
	if r.Trip != "X to Y" {
		t.Errorf("Trip = %q, want first-seen %q", r.Trip, "X to Y")
	}
}

func TestStationStats_Empty(t *testing.T) {
	if _, err := StationStats(table(allColumns)); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestDurationStats(t *testing.T) {
	tbl := table(allColumns,
		trip("A", "B", 8, 100, "Subscriber"),
		trip("A", "B", 8, 300, "Subscriber"),
		trip("A", "B", 8, 200, "Subscriber"),
	)

	r, err := DurationStats(tbl)
	if err != nil {
		t.Fatalf("DurationStats() failed: %v", err)
	}
	if r.Total != 600 {
		t.Errorf("Total = %v, want 600", r.Total)
	}
	if r.Mean != 200 {
		t.Errorf("Mean = %v, want 200", r.Mean)
	}
	if r.Shortest != 100 || r.Longest != 300 {
		t.Errorf("Shortest/Longest = %v/%v, want 100/300", r.Shortest, r.Longest)
	}
	if len(r.Fields()) != 4 {
		t.Errorf("Fields() = %v", r.Fields())
	}
}

func TestDurationStats_Empty(t *testing.T) {
	empty := table(allColumns)

	if got := TotalDuration(empty); got != 0 {
		t.Errorf("TotalDuration(empty) = %v, want 0", got)
	}

	if _, err := MeanDuration(empty); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("MeanDuration(empty) error = %v, want ErrInsufficientData", err)
	}

	r, err := DurationStats(empty)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("DurationStats(empty) error = %v, want ErrInsufficientData", err)
	}
	if r.Total != 0 {
		t.Errorf("partial report Total = %v, want 0", r.Total)
	}
	if len(r.Fields()) != 1 {
		t.Errorf("partial report Fields() = %v, want total only", r.Fields())
	}
}

func TestUserStats(t *testing.T) {
	tbl := table(allColumns,
		withBirthYear(withGender(trip("A", "B", 8, 60, "Subscriber"), "Male"), 1985),
		withBirthYear(withGender(trip("A", "B", 8, 60, "Subscriber"), "Female"), 1990),
		trip("A", "B", 8, 60, "Customer"),
		withBirthYear(withGender(trip("A", "B", 8, 60, "Subscriber"), "Female"), 1972),
		withBirthYear(trip("A", "B", 8, 60, "Subscriber"), 1990),
	)

	r, err := UserStats(tbl)
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}

	if len(r.UserTypes) != 2 || r.UserTypes[0] != (Count[string]{"Subscriber", 4}) || r.UserTypes[1] != (Count[string]{"Customer", 1}) {
		t.Errorf("UserTypes = %v", r.UserTypes)
	}

	if !r.GenderAvailable {
		t.Fatal("gender should be available")
	}
	if len(r.Gender) != 2 || r.Gender[0] != (Count[string]{"Female", 2}) {
		t.Errorf("Gender = %v", r.Gender)
	}

	b := r.BirthYears
	if b.Earliest != 1972 || b.MostRecent != 1990 || b.MostCommon != 1990 || b.Samples != 4 {
		t.Errorf("BirthYears = %+v", b)
	}
}

func TestUserStats_SubscriberCustomerOrder(t *testing.T) {
	tbl := table(allColumns,
		trip("A", "B", 8, 60, "Subscriber"),
		trip("A", "B", 8, 60, "Subscriber"),
		trip("A", "B", 8, 60, "Customer"),
	)

	r, err := UserStats(tbl)
	if err != nil && !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("UserStats() failed: %v", err)
	}

	want := []Count[string]{{"Subscriber", 2}, {"Customer", 1}}
	if len(r.UserTypes) != len(want) {
		t.Fatalf("UserTypes = %v, want %v", r.UserTypes, want)
	}
	for i := range want {
		if r.UserTypes[i] != want[i] {
			t.Errorf("UserTypes[%d] = %v, want %v", i, r.UserTypes[i], want[i])
		}
	}
}

func TestUserStats_ColumnsUnavailable(t *testing.T) {
	tbl := table(models.RequiredColumns,
		trip("A", "B", 8, 60, "Subscriber"),
	)

	r, err := UserStats(tbl)
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}

	if r.GenderAvailable || r.BirthYearAvailable {
		t.Error("gender and birth year should be unavailable")
	}

	gender := r.GenderFields()
	if len(gender) != 1 || gender[0].Value != Unavailable {
		t.Errorf("GenderFields() = %v, want unavailable", gender)
	}
	birth := r.BirthYearFields()
	if len(birth) != 1 || birth[0].Value != "unavailable" {
		t.Errorf("BirthYearFields() = %v, want exactly \"unavailable\"", birth)
	}
}

func TestUserStats_NoBirthYearValues(t *testing.T) {
	tbl := table(allColumns,
		trip("A", "B", 8, 60, "Subscriber"),
	)

	r, err := UserStats(tbl)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("error = %v, want ErrInsufficientData", err)
	}
	if len(r.UserTypes) != 1 {
		t.Errorf("partial report lost user types: %v", r.UserTypes)
	}
	if r.BirthYearFields() != nil {
		t.Errorf("BirthYearFields() = %v, want nil", r.BirthYearFields())
	}
}

func TestUserStats_Empty(t *testing.T) {
	_, err := UserStats(table(allColumns))
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}

	_, err = UserStats(table(models.RequiredColumns))
	if err != nil {
		t.Errorf("no birth year column: error = %v, want nil", err)
	}
}

func TestUserStats_BirthYearBounds(t *testing.T) {
	tbl := table(allColumns,
		withBirthYear(trip("A", "B", 8, 60, "Subscriber"), 1999.0),
		withBirthYear(trip("A", "B", 8, 60, "Subscriber"), 1960.0),
		withBirthYear(trip("A", "B", 8, 60, "Subscriber"), 1960.0),
		withBirthYear(trip("A", "B", 8, 60, "Subscriber"), 2001.0),
	)

	r, err := UserStats(tbl)
	if err != nil {
		t.Fatalf("UserStats() failed: %v", err)
	}

	b := r.BirthYears
	if b.Earliest > b.MostRecent {
		t.Errorf("Earliest %d > MostRecent %d", b.Earliest, b.MostRecent)
	}
	observed := map[int]bool{1999: true, 1960: true, 2001: true}
	if !observed[b.MostCommon] {
		t.Errorf("MostCommon %d is not an observed year", b.MostCommon)
	}
	if b.MostCommon != 1960 {
		t.Errorf("MostCommon = %d, want 1960", b.MostCommon)
	}
}
