package stats

import (
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
)

// BirthYearStats describes rider birth years, in whole years.
type BirthYearStats struct {
	Earliest   int
	MostRecent int
	MostCommon int
	Samples    int
}

// UserReport describes rider demographics.
type UserReport struct {
	UserTypes []Count[string]

	GenderAvailable bool
	Gender          []Count[string]

	BirthYearAvailable bool
	BirthYears         BirthYearStats
}

// UserStats computes user type and gender counts and birth year
// statistics. Gender and birth year are unavailable when the source
// has no such column. Empty cells are not counted.
func UserStats(t *dataset.Table) (UserReport, error) {
	var r UserReport

	userTypes := make([]string, 0, t.Len())
	for _, trip := range t.Trips {
		if trip.UserType != "" {
			userTypes = append(userTypes, trip.UserType)
		}
	}
	r.UserTypes = Frequencies(userTypes)

	if t.HasColumn(models.ColGender) {
		r.GenderAvailable = true
		var genders []string
		for _, trip := range t.Trips {
			if trip.Gender != "" {
				genders = append(genders, trip.Gender)
			}
		}
		r.Gender = Frequencies(genders)
	}

	if !t.HasColumn(models.ColBirthYear) {
		return r, nil
	}
	r.BirthYearAvailable = true

	var years []int
	for _, trip := range t.Trips {
		if trip.HasBirthYear {
			years = append(years, trip.BirthYearInt())
		}
	}
	if len(years) == 0 {
		return r, insufficient("birth year")
	}

	b := BirthYearStats{Earliest: years[0], MostRecent: years[0], Samples: len(years)}
	for _, y := range years[1:] {
		b.Earliest = min(b.Earliest, y)
		b.MostRecent = max(b.MostRecent, y)
	}
	b.MostCommon, _ = Mode(years)
	r.BirthYears = b
	return r, nil
}

// UserTypeFields returns the user type counts.
func (r UserReport) UserTypeFields() []Field {
	return countFields(r.UserTypes)
}

// GenderFields returns the gender counts, or Unavailable.
func (r UserReport) GenderFields() []Field {
	if !r.GenderAvailable {
		return []Field{field("Gender", Unavailable)}
	}
	return countFields(r.Gender)
}

// BirthYearFields returns the birth year statistics, or Unavailable.
// Nothing is returned when the column exists but no row has a value.
func (r UserReport) BirthYearFields() []Field {
	if !r.BirthYearAvailable {
		return []Field{field("Birth year", Unavailable)}
	}
	if r.BirthYears.Samples == 0 {
		return nil
	}
	return []Field{
		field("Earliest birth year", r.BirthYears.Earliest),
		field("Most recent birth year", r.BirthYears.MostRecent),
		field("Most common birth year", r.BirthYears.MostCommon),
	}
}

// Fields returns the report as labelled values.
func (r UserReport) Fields() []Field {
	fields := r.UserTypeFields()
	fields = append(fields, r.GenderFields()...)
	return append(fields, r.BirthYearFields()...)
}
