package services

import (
	"context"
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/stats"
)

// Stage names a step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageLoad     Stage = "load"
	StageFilter   Stage = "filter"
	StageTime     Stage = "time"
	StageStation  Stage = "station"
	StageDuration Stage = "duration"
	StageUsers    Stage = "users"
)

// Timing records how long a stage took.
type Timing struct {
	Stage   Stage
	Elapsed time.Duration
}

// Result is the outcome of one pipeline run. A reducer error is kept
// next to its (possibly partial) report.
type Result struct {
	Query models.Query
	Table *dataset.Table

	Time    stats.TimeReport
	TimeErr error

	Station    stats.StationReport
	StationErr error

	Duration    stats.DurationReport
	DurationErr error

	Users    stats.UserReport
	UsersErr error

	Timings []Timing
}

// Elapsed returns the time spent in a stage.
func (r *Result) Elapsed(stage Stage) time.Duration {
	for _, t := range r.Timings {
		if t.Stage == stage {
			return t.Elapsed
		}
	}
	return 0
}

// Errors returns the reducer errors that occurred, in stage order.
func (r *Result) Errors() []error {
	var errs []error
	for _, err := range []error{r.TimeErr, r.StationErr, r.DurationErr, r.UsersErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Run loads the query's city, filters it and computes every report.
// Load and filter errors abort the run; reducer errors do not.
func Run(ctx context.Context, loader *dataset.Loader, q models.Query) (*Result, error) {
	r := &Result{Query: q}

	start := time.Now()
	table, err := loader.Load(ctx, q.City)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", q.City, err)
	}
	r.track(StageLoad, start)

	start = time.Now()
	table, err = dataset.Filter(table, q.Month, q.Day)
	if err != nil {
		return nil, err
	}
	r.Table = table
	r.track(StageFilter, start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	r.Time, r.TimeErr = stats.TimeStats(table)
	r.track(StageTime, start)

	start = time.Now()
	r.Station, r.StationErr = stats.StationStats(table)
	r.track(StageStation, start)

	start = time.Now()
	r.Duration, r.DurationErr = stats.DurationStats(table)
	r.track(StageDuration, start)

	start = time.Now()
	r.Users, r.UsersErr = stats.UserStats(table)
	r.track(StageUsers, start)

	logger.Debug("pipeline finished",
		"query", q.String(),
		"trips", table.Len(),
		"errors", len(r.Errors()),
	)
	return r, nil
}

func (r *Result) track(stage Stage, start time.Time) {
	r.Timings = append(r.Timings, Timing{Stage: stage, Elapsed: time.Since(start)})
}
