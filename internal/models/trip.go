// Package models defines data structures and domain types.
package models

import "time"

// Column names used by the city trip datasets.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns lists the columns every city dataset must carry.
var RequiredColumns = []string{
	ColStartTime,
	ColStartStation,
	ColEndStation,
	ColTripDuration,
	ColUserType,
}

// Trip represents one row of a city trip log.
type Trip struct {
	StartTime    time.Time
	EndTime      time.Time // zero when the source has no end time
	StartStation string
	EndStation   string
	Duration     float64 // seconds
	UserType     string
	Gender       string // empty when missing
	BirthYear    float64
	HasBirthYear bool

	// Derived from StartTime.
	Month     int
	DayOfWeek string
	Hour      int
}

// DerivedFields holds the calendar fields computed from a start time.
type DerivedFields struct {
	Month     int
	DayOfWeek string
	Hour      int
}

// DeriveFields computes the calendar fields for a start time.
func DeriveFields(t time.Time) DerivedFields {
	return DerivedFields{
		Month:     int(t.Month()),
		DayOfWeek: t.Weekday().String(),
		Hour:      t.Hour(),
	}
}

// Derive recomputes the trip's derived fields from its start time.
func (t *Trip) Derive() {
	d := DeriveFields(t.StartTime)
	t.Month = d.Month
	t.DayOfWeek = d.DayOfWeek
	t.Hour = d.Hour
}

// Route returns the "{start} to {end}" key used for trip popularity.
func (t Trip) Route() string {
	return t.StartStation + " to " + t.EndStation
}

// BirthYearInt returns the birth year truncated to a whole year.
func (t Trip) BirthYearInt() int {
	return int(t.BirthYear)
}
