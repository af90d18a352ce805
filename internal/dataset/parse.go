package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

var timeFormats = []string{
	timeLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isMissing reports whether a raw cell holds no value.
func isMissing(s string) bool {
	switch s {
	case "", "NaN", "NA", "nan", "<nil>":
		return true
	}
	return false
}

// columnValues returns the named column as strings, or nil when the frame
// does not have it.
func columnValues(frame dataframe.DataFrame, name string, present map[string]bool) []string {
	if !present[name] {
		return nil
	}
	return frame.Col(name).Records()
}

// parseFrame converts a raw frame into trips with derived calendar fields.
func parseFrame(path string, frame dataframe.DataFrame) ([]string, []models.Trip, error) {
	columns := frame.Names()
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, c := range models.RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Path: path, Missing: missing}
	}

	starts := columnValues(frame, models.ColStartTime, present)
	ends := columnValues(frame, models.ColEndTime, present)
	durations := columnValues(frame, models.ColTripDuration, present)
	startStations := columnValues(frame, models.ColStartStation, present)
	endStations := columnValues(frame, models.ColEndStation, present)
	userTypes := columnValues(frame, models.ColUserType, present)
	genders := columnValues(frame, models.ColGender, present)
	birthYears := columnValues(frame, models.ColBirthYear, present)

	trips := make([]models.Trip, 0, len(starts))
	for i := range starts {
		trip, err := parseRow(i, starts, ends, durations, birthYears)
		if err != nil {
			return nil, nil, err
		}
		trip.StartStation = startStations[i]
		trip.EndStation = endStations[i]
		trip.UserType = cell(userTypes, i)
		if g := cell(genders, i); !isMissing(g) {
			trip.Gender = g
		}
		trip.Derive()
		trips = append(trips, trip)
	}

	return columns, trips, nil
}

func parseRow(i int, starts, ends, durations, birthYears []string) (models.Trip, error) {
	var trip models.Trip

	raw := strings.TrimSpace(starts[i])
	start, ok := parseTimeString(raw)
	if !ok {
		return trip, &ParseError{Row: i + 1, Column: models.ColStartTime, Value: raw,
			Err: fmt.Errorf("no matching time layout")}
	}
	trip.StartTime = start

	if raw := strings.TrimSpace(cell(ends, i)); !isMissing(raw) {
		end, ok := parseTimeString(raw)
		if !ok {
			return trip, &ParseError{Row: i + 1, Column: models.ColEndTime, Value: raw,
				Err: fmt.Errorf("no matching time layout")}
		}
		trip.EndTime = end
	}

	raw = strings.TrimSpace(durations[i])
	d, err := parseNumber(raw)
	if err != nil {
		return trip, &ParseError{Row: i + 1, Column: models.ColTripDuration, Value: raw, Err: err}
	}
	trip.Duration = d

	if raw := strings.TrimSpace(cell(birthYears, i)); !isMissing(raw) {
		y, err := parseNumber(raw)
		if err != nil {
			return trip, &ParseError{Row: i + 1, Column: models.ColBirthYear, Value: raw, Err: err}
		}
		trip.BirthYear = y
		trip.HasBirthYear = true
	}

	return trip, nil
}

var (
	errNoValue   = errors.New("no value")
	errNotFinite = errors.New("not a finite number")
)

// parseNumber parses a numeric cell. NaN and infinities are rejected so
// they never reach the reducers.
func parseNumber(raw string) (float64, error) {
	if isMissing(raw) {
		return 0, errNoValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func cell(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
