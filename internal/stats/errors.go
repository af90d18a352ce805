package stats

import (
	"errors"
	"fmt"
)

// ErrInsufficientData matches every *InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError is returned when a statistic is undefined because
// there are no values to reduce.
type InsufficientDataError struct {
	Statistic string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s is undefined on an empty selection", e.Statistic)
}

// Is matches ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

func insufficient(statistic string) error {
	return &InsufficientDataError{Statistic: statistic}
}
