// Package stats reduces a trip table to descriptive reports.
//
// There are four independent reducers:
//
//	TimeStats      most common start/end station, hour, month and day
//	StationStats   most common start/end station and start-to-end trip
//	DurationStats  total and mean trip duration
//	UserStats      user type and gender counts, birth year range and mode
//
// Each reducer treats the table as read-only. Statistics that are
// undefined on an empty table fail with an *InsufficientDataError; the
// partially filled report is still returned so a caller can show what
// is defined.
//
// Modes break ties by first occurrence in table order.
package stats
