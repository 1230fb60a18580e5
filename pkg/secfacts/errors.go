package secfacts

import "github.com/secfacts/pipeline/pkg/core"

// Sentinel errors returned at the run/façade level, re-exported from
// pkg/core so callers need not import both packages to use errors.Is.
// Per-file parsing and validation errors (e.g. core.ErrNonNumericValue)
// are recorded in the manifest's FailedFiles; only under FailFast is
// the first one returned, wrapped, from Run, where it is reachable via
// errors.Is against the core package directly.
var (
	// ErrAlreadyProcessed is returned by Run when the facts output
	// already exists and Force is not set.
	ErrAlreadyProcessed = core.ErrAlreadyProcessed

	// ErrNoInputFiles is returned when the input directory contains no
	// CIK*.json files.
	ErrNoInputFiles = core.ErrNoInputFiles
)
