package stats

import (
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

var allColumns = []string{
	models.ColStartTime, models.ColEndTime, models.ColTripDuration,
	models.ColStartStation, models.ColEndStation, models.ColUserType,
	models.ColGender, models.ColBirthYear,
}

// trip builds a trip starting at the given hour on 2017-03-06 (a Monday).
func trip(start, end string, hour int, duration float64, userType string) models.Trip {
	t := models.Trip{
		StartTime:    time.Date(2017, time.March, 6, hour, 0, 0, 0, time.UTC),
		StartStation: start,
		EndStation:   end,
		Duration:     duration,
		UserType:     userType,
	}
	t.Derive()
	return t
}

func withBirthYear(t models.Trip, year float64) models.Trip {
	t.BirthYear = year
	t.HasBirthYear = true
	return t
}

func withGender(t models.Trip, gender string) models.Trip {
	t.Gender = gender
	return t
}

func table(columns []string, trips ...models.Trip) *dataset.Table {
	return dataset.NewTable("chicago", columns, trips)
}
