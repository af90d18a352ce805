// Package report turns pipeline results into titled sections, rendered as
// plain text for non-interactive use or as cards by the TUI.
package report

import (
	"errors"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/services"
	"github.com/j-veylop/bikeshare-explorer/internal/stats"
)

// EndOfData is shown once raw paging runs past the last row.
const EndOfData = "End of data reached."

// Group is a labelled block of fields inside a section.
type Group struct {
	Title  string
	Fields []stats.Field
}

// Section is one report with the time it took to compute.
type Section struct {
	Title   string
	Groups  []Group
	Err     error
	Elapsed time.Duration
}

// Sections returns the four reports of r in display order.
func Sections(r *services.Result) []Section {
	return []Section{
		{
			Title:   "Most Frequent Times of Travel",
			Groups:  []Group{{Fields: timeFields(r)}},
			Err:     r.TimeErr,
			Elapsed: r.Elapsed(services.StageTime),
		},
		{
			Title:   "Most Popular Stations and Trip",
			Groups:  []Group{{Fields: stationFields(r)}},
			Err:     r.StationErr,
			Elapsed: r.Elapsed(services.StageStation),
		},
		{
			Title:   "Trip Duration",
			Groups:  []Group{{Fields: r.Duration.Fields()}},
			Err:     r.DurationErr,
			Elapsed: r.Elapsed(services.StageDuration),
		},
		{
			Title:   "User Stats",
			Groups:  userGroups(r.Users),
			Err:     r.UsersErr,
			Elapsed: r.Elapsed(services.StageUsers),
		},
	}
}

func timeFields(r *services.Result) []stats.Field {
	if r.TimeErr != nil {
		return nil
	}
	return r.Time.Fields()
}

func stationFields(r *services.Result) []stats.Field {
	if r.StationErr != nil {
		return nil
	}
	return r.Station.Fields()
}

func userGroups(u stats.UserReport) []Group {
	groups := []Group{{Title: "Counts of user types", Fields: u.UserTypeFields()}}
	if gender := u.GenderFields(); u.GenderAvailable {
		groups = append(groups, Group{Title: "Counts of gender", Fields: gender})
	} else {
		groups = append(groups, Group{Fields: gender})
	}
	if birth := u.BirthYearFields(); len(birth) > 0 {
		title := "Birth year stats"
		if !u.BirthYearAvailable {
			title = ""
		}
		groups = append(groups, Group{Title: title, Fields: birth})
	}
	return groups
}

// ErrorText describes a reducer error for display in place of a statistic.
func ErrorText(err error) string {
	var ide *stats.InsufficientDataError
	if errors.As(err, &ide) {
		return "Not enough data to compute the " + ide.Statistic + "."
	}
	return err.Error()
}
