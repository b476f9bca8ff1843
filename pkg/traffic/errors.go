package traffic

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a structural landmark of the table was not on the page.
	ErrNotFound = errors.New("traffic table not found")

	// ErrMalformedRow means a row was normalized best-effort because its
	// shape or its icons did not match what the table normally holds.
	ErrMalformedRow = errors.New("malformed row")
)

// NotFoundError names the landmark that could not be located.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Landmark string // "title", "header row" or "data rows"
	Query    string // XPath that returned nothing
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no %s matched %s", ErrNotFound, e.Landmark, e.Query)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MalformedRowError describes one degraded row or cell.
// It matches ErrMalformedRow with errors.Is.
type MalformedRowError struct {
	Row    int // zero-based data row index
	Column int // zero-based column, -1 when the whole row is affected
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s %d: %s", ErrMalformedRow, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s %d column %d: %s", ErrMalformedRow, e.Row, e.Column, e.Reason)
}

func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}
