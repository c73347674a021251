package core

import (
	"fmt"
)

// MalformedDateError is returned when a date field does not match the export layout.
type MalformedDateError struct {
	Value  string
	Layout string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: want layout %s", e.Value, e.Layout)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

// MalformedAmountError is returned when an amount is not a decimal number.
type MalformedAmountError struct {
	Value string
	Err   error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("malformed amount %q", e.Value)
}

func (e *MalformedAmountError) Unwrap() error {
	return e.Err
}

// UnknownOperationError is returned when a declared type matches no operation
// and the source is not an always-income source.
type UnknownOperationError struct {
	Declared string
	Source   string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q (source %q)", e.Declared, e.Source)
}

// DataConsistencyError is returned when an entry targets a spending category
// but was not classified as consumption.
type DataConsistencyError struct {
	Entry    Entry
	Category string
}

func (e *DataConsistencyError) Error() string {
	return fmt.Sprintf("entry on %s from %q to category %q is %s, want consumption",
		e.Entry.Date, e.Entry.Source, e.Category, e.Entry.Operation)
}

// UnknownMonthError is returned when a projection is requested for a month
// without any entries.
type UnknownMonthError struct {
	Month MonthKey
}

func (e *UnknownMonthError) Error() string {
	return fmt.Sprintf("unknown month %s", e.Month)
}
