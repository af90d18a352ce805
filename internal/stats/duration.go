package stats

import (
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
)

// DurationReport describes total and average trip duration in seconds.
type DurationReport struct {
	Trips    int
	Total    float64
	Mean     float64
	Shortest float64
	Longest  float64
}

// TotalDuration returns the sum of trip durations, 0 for an empty table.
func TotalDuration(t *dataset.Table) float64 {
	var total float64
	for _, trip := range t.Trips {
		total += trip.Duration
	}
	return total
}

// MeanDuration returns the mean trip duration.
func MeanDuration(t *dataset.Table) (float64, error) {
	if t.Empty() {
		return 0, insufficient("mean trip duration")
	}
	return TotalDuration(t) / float64(t.Len()), nil
}

// DurationStats computes total, mean, shortest and longest trip duration.
// On an empty table the report still carries Total = 0.
func DurationStats(t *dataset.Table) (DurationReport, error) {
	r := DurationReport{Trips: t.Len(), Total: TotalDuration(t)}

	mean, err := MeanDuration(t)
	if err != nil {
		return r, err
	}
	r.Mean = mean

	r.Shortest, r.Longest = t.Trips[0].Duration, t.Trips[0].Duration
	for _, trip := range t.Trips[1:] {
		r.Shortest = min(r.Shortest, trip.Duration)
		r.Longest = max(r.Longest, trip.Duration)
	}
	return r, nil
}

// Fields returns the report as labelled values.
func (r DurationReport) Fields() []Field {
	fields := []Field{
		field("Total travel time", formatSeconds(r.Total)),
	}
	if r.Trips == 0 {
		return fields
	}
	return append(fields,
		field("Mean travel time", formatSeconds(r.Mean)),
		field("Shortest trip", formatSeconds(r.Shortest)),
		field("Longest trip", formatSeconds(r.Longest)),
	)
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%.2f s (%s)", s, d)
}
