package stats

import (
	"fmt"
	"strconv"
)

// Unavailable marks a statistic whose source column is missing.
const Unavailable = "unavailable"

// Field is one labelled value of a report.
type Field struct {
	Label string
	Value string
}

func field(label string, value any) Field {
	switch v := value.(type) {
	case string:
		return Field{Label: label, Value: v}
	case int:
		return Field{Label: label, Value: strconv.Itoa(v)}
	case float64:
		return Field{Label: label, Value: strconv.FormatFloat(v, 'f', 2, 64)}
	default:
		return Field{Label: label, Value: fmt.Sprint(v)}
	}
}

// countFields renders a frequency table as one field per value.
func countFields(counts []Count[string]) []Field {
	fields := make([]Field, 0, len(counts))
	for _, c := range counts {
		fields = append(fields, field(c.Value, c.Count))
	}
	return fields
}
