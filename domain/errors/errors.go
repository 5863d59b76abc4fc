package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDataSource       = errors.New("data source error")
	ErrParse            = errors.New("parse error")
	ErrEmptyAggregation = errors.New("no trips under the current filter")
	ErrUnknownCity      = errors.New("unknown city")
	ErrMissingColumn    = errors.New("missing required column")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDuration  = errors.New("invalid trip duration")
	ErrInvalidBirthYear = errors.New("invalid birth year")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDay       = errors.New("invalid day of week")
)

// DataSourceError is returned when a city's source cannot be opened, read or does not
// have the expected schema. It matches ErrDataSource and the underlying cause.
type DataSourceError struct {
	Source string
	Err    error
}

func NewDataSourceError(source string, err error) *DataSourceError {
	return &DataSourceError{Source: source, Err: err}
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrDataSource, e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() []error {
	return []error{ErrDataSource, e.Err}
}

// ParseError is returned when a single field of a trip row cannot be parsed.
// + Row: 1-based data row, the header is not counted
// + Column: header name of the offending field
// + Value: raw value as found in the source
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func NewParseError(row int, column string, value string, err error) *ParseError {
	return &ParseError{Row: row, Column: column, Value: value, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d, column %q, value %q: %s", ErrParse, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
