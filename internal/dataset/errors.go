package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrParse           = errors.New("parse error")
	ErrMissingColumn   = errors.New("missing column")
	ErrInvalidSelector = errors.New("invalid selector")
)

// DatasetNotFoundError is returned when a city has no mapped source or the
// source file does not exist.
type DatasetNotFoundError struct {
	City string
	Path string
	Err  error
}

func (e *DatasetNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dataset not found: no source configured for city %q", e.City)
	}
	return fmt.Sprintf("dataset not found for city %q at %s", e.City, e.Path)
}

// Is matches ErrDatasetNotFound.
func (e *DatasetNotFoundError) Is(target error) bool { return target == ErrDatasetNotFound }

// Unwrap returns the underlying filesystem error, if any.
func (e *DatasetNotFoundError) Unwrap() error { return e.Err }

// ParseError is returned when a cell cannot be interpreted.
type ParseError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: row %d column %q: cannot interpret %q", e.Row, e.Column, e.Value)
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError is returned when a required column is absent.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns %q", e.Path, e.Missing)
}

// Is matches ErrMissingColumn.
func (e *SchemaError) Is(target error) bool { return target == ErrMissingColumn }

// SelectorError is returned for a month or day selector outside the
// accepted names.
type SelectorError struct {
	Axis  string // "month" or "day"
	Value string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid %s selector %q", e.Axis, e.Value)
}

// Is matches ErrInvalidSelector.
func (e *SelectorError) Is(target error) bool { return target == ErrInvalidSelector }
