// Package parser converts third-party activity file formats into
// normalized run records ready for persistence.
package parser

import (
	"fmt"
	"time"
)

// Format identifies a supported (or explicitly unsupported) activity file format.
type Format string

const (
	FormatTCX     Format = "tcx"
	FormatGPX     Format = "gpx"
	FormatCSV     Format = "csv"
	FormatFIT     Format = "fit"
	FormatUnknown Format = "unknown"
)

// Unit conversions for normalizing external formats to miles and minutes.
const (
	metersToMiles = 0.000621371
	kmToMiles     = 0.621371
)

// defaultFeelingRating is assigned to every imported run; the user can
// edit it afterwards.
const defaultFeelingRating = 3

// ParsedRun is the normalized output of any file parser: a run record
// without an ID, carrying a provenance note in Notes.
type ParsedRun struct {
	Date            time.Time
	DistanceMiles   float64
	DurationMinutes float64
	PaceMinPerMile  float64
	Route           string
	Notes           string
	FeelingRating   int
}

// ParseError reports a structural problem with an activity file. A parser
// either returns valid records or fails with a ParseError; it never
// returns partial zero-valued data as if valid.
type ParseError struct {
	Format Format
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Reason)
}

func newParseError(format Format, reason string) *ParseError {
	return &ParseError{Format: format, Reason: reason}
}
