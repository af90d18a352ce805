package models

import (
	"fmt"
	"strings"
	"time"
)

// All is the wildcard selector that imposes no constraint.
const All = "all"

// Months lists the lowercase month selectors in calendar order.
var Months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Days lists the lowercase weekday selectors starting on Monday.
var Days = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ParseMonth converts a month selector into a month number.
// It returns 0 for "all". Matching is case-insensitive.
func ParseMonth(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == All {
		return 0, nil
	}
	for i, m := range Months {
		if m == s {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

// ParseDay converts a day selector into the derived day-of-week value
// ("Monday", ...). It returns "" for "all". Matching is case-insensitive.
func ParseDay(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == All {
		return "", nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d.String(), nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// MonthName returns the title-cased name for a month number, or "" when
// the number is out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// Query is a city plus month and day selectors.
type Query struct {
	City  string
	Month string
	Day   string
}

// String returns a short description of the query.
func (q Query) String() string {
	return fmt.Sprintf("%s (month: %s, day: %s)", q.City, q.Month, q.Day)
}
