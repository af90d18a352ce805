package stats

import (
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// TimeReport describes the most frequent times of travel.
type TimeReport struct {
	StartStation string
	EndStation   string
	Hour         int
	Month        int
	DayOfWeek    string
	// HourlyTrips counts trips by start hour.
	HourlyTrips [24]int
}

// TimeStats computes the most frequent times of travel.
func TimeStats(t *dataset.Table) (TimeReport, error) {
	var r TimeReport
	if t.Empty() {
		return r, insufficient("most common start hour")
	}

	n := t.Len()
	starts := make([]string, 0, n)
	ends := make([]string, 0, n)
	hours := make([]int, 0, n)
	months := make([]int, 0, n)
	days := make([]string, 0, n)
	for _, trip := range t.Trips {
		starts = append(starts, trip.StartStation)
		ends = append(ends, trip.EndStation)
		hours = append(hours, trip.Hour)
		months = append(months, trip.Month)
		days = append(days, trip.DayOfWeek)
		r.HourlyTrips[trip.Hour]++
	}

	r.StartStation, _ = Mode(starts)
	r.EndStation, _ = Mode(ends)
	r.Hour, _ = Mode(hours)
	r.Month, _ = Mode(months)
	r.DayOfWeek, _ = Mode(days)
	return r, nil
}

// Fields returns the report as labelled values.
func (r TimeReport) Fields() []Field {
	return []Field{
		field("Most common month", models.MonthName(r.Month)),
		field("Most common day of week", r.DayOfWeek),
		field("Most common start hour", r.Hour),
		field("Most commonly used start station", r.StartStation),
		field("Most commonly used end station", r.EndStation),
	}
}

// HourlySeries returns HourlyTrips as floats for charting.
func (r TimeReport) HourlySeries() []float64 {
	series := make([]float64, len(r.HourlyTrips))
	for i, c := range r.HourlyTrips {
		series[i] = float64(c)
	}
	return series
}
