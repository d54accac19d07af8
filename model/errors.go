package model

import (
	"errors"
	"fmt"
	"strings"
)

// IO errors
var (
	// ErrNoInput indicates that stdin was selected as the source but carried
	// no data.
	ErrNoInput = errors.New("no input data received on stdin")

	// ErrSourceNotFound indicates that a source path does not exist.
	ErrSourceNotFound = errors.New("source file not found")
)

// ValidationError reports a bad input value caught before any mutation.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// SelectionError reports explicit part criteria that matched nothing. It
// enumerates the parts that were available so the caller can correct the
// selection.
type SelectionError struct {
	Available []string
}

func (e *SelectionError) Error() string {
	return "no parts matched the selection; available parts: " + strings.Join(e.Available, ", ")
}

// UnsupportedFormatError reports a requested output format outside the
// engine's registered set.
type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q, choose from: %s",
		e.Format, strings.Join(e.Supported, ", "))
}
