// Package dataset loads city trip logs and narrows them by month and day.
package dataset

import (
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// Table is a city's trips together with the raw frame they were parsed
// from. A Table is never modified after construction; filtering returns
// a new one sharing the same frame.
type Table struct {
	City  string
	Trips []models.Trip

	columns []string
	rows    []int // frame row index per trip
	frame   dataframe.DataFrame
}

// NewTable builds a table from already-parsed trips. The raw frame is
// rebuilt from the trips so paging works the same as for loaded tables.
func NewTable(city string, columns []string, trips []models.Trip) *Table {
	t := &Table{
		City:    city,
		Trips:   make([]models.Trip, len(trips)),
		columns: slices.Clone(columns),
		rows:    make([]int, len(trips)),
	}
	copy(t.Trips, trips)
	for i := range t.rows {
		t.rows[i] = i
	}
	if len(trips) > 0 {
		t.frame = dataframe.LoadRecords(tripRecords(columns, trips),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
	}
	return t
}

// Len returns the number of trips.
func (t *Table) Len() int {
	return len(t.Trips)
}

// Empty reports whether the table has no trips.
func (t *Table) Empty() bool {
	return len(t.Trips) == 0
}

// Columns returns the source column names.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the source carried the named column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// view returns a table over a subset of this table's trips.
func (t *Table) view(trips []models.Trip, rows []int) *Table {
	return &Table{
		City:    t.City,
		Trips:   trips,
		columns: t.columns,
		rows:    rows,
		frame:   t.frame,
	}
}

// tripRecords formats trips as CSV-style records with a header row.
func tripRecords(columns []string, trips []models.Trip) [][]string {
	records := make([][]string, 0, len(trips)+1)
	records = append(records, slices.Clone(columns))
	for _, trip := range trips {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(trip, col)
		}
		records = append(records, row)
	}
	return records
}

func formatCell(trip models.Trip, col string) string {
	switch col {
	case models.ColStartTime:
		return trip.StartTime.Format(timeLayout)
	case models.ColEndTime:
		if trip.EndTime.IsZero() {
			return ""
		}
		return trip.EndTime.Format(timeLayout)
	case models.ColTripDuration:
		return strconv.FormatFloat(trip.Duration, 'f', -1, 64)
	case models.ColStartStation:
		return trip.StartStation
	case models.ColEndStation:
		return trip.EndStation
	case models.ColUserType:
		return trip.UserType
	case models.ColGender:
		return trip.Gender
	case models.ColBirthYear:
		if !trip.HasBirthYear {
			return ""
		}
		return strconv.FormatFloat(trip.BirthYear, 'f', -1, 64)
	default:
		return ""
	}
}
