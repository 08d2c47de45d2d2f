package shared

import (
	"errors"
	"fmt"
)

var (
	ErrHeaderNotFound = errors.New("could not find header")
	ErrVisMismatch    = errors.New("tables belong to different observations")
)

// ParseError means a file could not be read at all.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BodyError reports a malformed data row after the header was read.
type BodyError struct {
	Path string
	Line int
	Err  error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError is returned when the amplitude and phase exports of a
// calibration table do not pair up one to one.
type SchemaMismatchError struct {
	Kind       CalKind
	Amp        TableType
	Phase      TableType
	AmpCount   int
	PhaseCount int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: found %d %s files but %d %s files",
		e.Kind, e.AmpCount, e.Amp, e.PhaseCount, e.Phase)
}
