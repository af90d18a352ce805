package stats

import (
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
)

// StationReport describes the most popular stations and trip.
type StationReport struct {
	StartStation string
	EndStation   string
	Trip         string // "{start} to {end}"
	TripCount    int
}

// StationStats computes the most popular stations and start-to-end trip.
func StationStats(t *dataset.Table) (StationReport, error) {
	var r StationReport
	if t.Empty() {
		return r, insufficient("most common station")
	}

	n := t.Len()
	starts := make([]string, 0, n)
	ends := make([]string, 0, n)
	routes := make([]string, 0, n)
	for _, trip := range t.Trips {
		starts = append(starts, trip.StartStation)
		ends = append(ends, trip.EndStation)
		routes = append(routes, trip.Route())
	}

	r.StartStation, _ = Mode(starts)
	r.EndStation, _ = Mode(ends)
	top, _ := modeCount(routes)
	r.Trip = top.Value
	r.TripCount = top.Count
	return r, nil
}

// Fields returns the report as labelled values.
func (r StationReport) Fields() []Field {
	return []Field{
		field("Most commonly used start station", r.StartStation),
		field("Most commonly used end station", r.EndStation),
		field("Most common trip", r.Trip),
		field("Trips on that route", r.TripCount),
	}
}
