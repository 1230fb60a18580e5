package core

import (
	"os"
	"path/filepath"
)

// MinFileSize is the byte-size floor below which a file is skipped
// without being read: an empty or near-empty CIK*.json file cannot
// contain a usable entity record.
const MinFileSize = 100

// loadResult carries the outcome of loading a single file.
type loadResult struct {
	doc     RawDocument
	partial bool
}

// loadFile reads path and decodes it into a RawDocument. It first
// tries a strict order-preserving decode; on failure it falls back to
// repairTruncatedJSON. loadFile never returns both a nil doc and a nil
// error: callers distinguish skip (ErrEmptyFile) from hard failure.
func loadFile(path string) (loadResult, error) {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return loadResult{}, wrapError("load", name, err)
	}
	if info.Size() < MinFileSize {
		return loadResult{}, wrapError("load", name, ErrEmptyFile)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return loadResult{}, wrapError("load", name, err)
	}

	if doc, err := decodeOrderedDocument(raw); err == nil {
		return loadResult{doc: doc, partial: false}, nil
	}

	repaired, ok := repairTruncatedJSON(raw)
	if !ok {
		return loadResult{}, wrapError("load", name, ErrUnrecoverableJSON)
	}
	return loadResult{doc: repaired, partial: true}, nil
}
