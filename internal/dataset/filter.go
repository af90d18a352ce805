package dataset

import "github.com/j-veylop/bikeshare-explorer/internal/models"

// Filter returns the trips of t whose derived month and day of week match
// the selectors. Either selector may be "all". Selectors are
// case-insensitive; an empty result is not an error.
func Filter(t *Table, month, day string) (*Table, error) {
	m, err := models.ParseMonth(month)
	if err != nil {
		return nil, &SelectorError{Axis: "month", Value: month}
	}
	d, err := models.ParseDay(day)
	if err != nil {
		return nil, &SelectorError{Axis: "day", Value: day}
	}

	trips := make([]models.Trip, 0, len(t.Trips))
	rows := make([]int, 0, len(t.rows))
	for i, trip := range t.Trips {
		if m != 0 && trip.Month != m {
			continue
		}
		if d != "" && trip.DayOfWeek != d {
			continue
		}
		trips = append(trips, trip)
		rows = append(rows, t.rows[i])
	}

	return t.view(trips, rows), nil
}
