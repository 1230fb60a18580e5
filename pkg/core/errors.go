package core

import (
	"errors"
	"fmt"
)

// Sentinel errors raised while loading, validating, and extracting a
// single company-facts file.
var (
	// ErrEmptyFile is returned when a file is below the minimum size
	// floor and is skipped without being read.
	ErrEmptyFile = errors.New("file below minimum size")

	// ErrUnrecoverableJSON is returned when a truncated document could
	// not be repaired into a parseable, valid-shaped object.
	ErrUnrecoverableJSON = errors.New("truncated JSON could not be repaired")

	// ErrMissingTopLevelKey is returned when a required top-level key
	// (cik, entityName, facts) is absent.
	ErrMissingTopLevelKey = errors.New("missing required top-level key")

	// ErrInvalidCIK is returned when cik is neither an int nor a
	// numeric string.
	ErrInvalidCIK = errors.New("cik is not a valid identifier")

	// ErrInvalidEntityName is returned when entityName is empty or not
	// a string.
	ErrInvalidEntityName = errors.New("entityName is empty or not a string")

	// ErrInvalidFacts is returned when facts is not a mapping.
	ErrInvalidFacts = errors.New("facts is not a mapping")

	// ErrMissingDatapointField is returned in strict mode when a
	// datapoint is missing one of the required fields.
	ErrMissingDatapointField = errors.New("datapoint missing required field")

	// ErrNonNumericValue is returned when a datapoint's val cannot be
	// coerced to a float. This is a hard error in both strict and
	// partial mode — it signals data corruption distinct from
	// truncation.
	ErrNonNumericValue = errors.New("datapoint val is not numeric")
)

// Run-level sentinel errors, distinct from the per-file errors above.
var (
	// ErrAlreadyProcessed is returned by Run when the facts output
	// already exists and Force is not set.
	ErrAlreadyProcessed = errors.New("facts output already exists")

	// ErrNoInputFiles is returned when the input directory contains no
	// CIK*.json files.
	ErrNoInputFiles = errors.New("no CIK*.json files found")
)

// FileError wraps an error with the operation and input file that
// produced it.
type FileError struct {
	Op   string // operation name: "load", "validate", "extract", "write"
	File string // input file basename
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *FileError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapError wraps err with operation and file context. Returns nil if
// err is nil.
func wrapError(op, file string, err error) error {
	if err == nil {
		return nil
	}
	return &FileError{Op: op, File: file, Err: err}
}
