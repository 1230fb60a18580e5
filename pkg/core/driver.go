package core

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// progressEvery controls how often the driver logs progress: every N
// files, plus unconditionally on the final file.
const progressEvery = 500

// RunOptions configures a single driver run.
type RunOptions struct {
	InputDir  string
	OutputDir string
	Force     bool
	FailFast  bool
	Logger    Logger
	Now       func() time.Time
}

// Run executes the full pipeline: resumability gate, sequential
// per-file load/validate/extract/rank, accumulation, finalization, and
// manifest writing. It returns the completed manifest and an error
// only for run-level failures (bad input dir, writer open/close
// failure, fail-fast abort); per-file failures are recorded in the
// manifest, not returned.
func Run(opts RunOptions) (Manifest, error) {
	log := opts.Logger
	if log == nil {
		log = NopLogger()
	}
	log = log.With("component", "driver")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	snapshotDate := now().Format("2006-01-02")

	factsPath := filepath.Join(opts.OutputDir, "processed", "sec", "facts.parquet")
	if !opts.Force {
		if _, err := os.Stat(factsPath); err == nil {
			log.Info("facts output already exists, skipping run", "path", factsPath)
			return Manifest{}, ErrAlreadyProcessed
		}
	}

	paths, err := listInputFiles(opts.InputDir)
	if err != nil {
		return Manifest{}, err
	}
	if len(paths) == 0 {
		return Manifest{}, ErrNoInputFiles
	}

	accum, err := NewAccumulators(opts.OutputDir)
	if err != nil {
		return Manifest{}, err
	}

	start := now()
	manifest := Manifest{TotalFiles: len(paths)}

	for i, path := range paths {
		log.Debug("processing file", "file", filepath.Base(path))
		outcome, err := processFile(path, accum, snapshotDate)
		switch outcome {
		case OutcomeOK:
			manifest.ProcessedOK++
		case OutcomeRepaired:
			manifest.ProcessedOK++
			manifest.RepairedTruncated++
		case OutcomeSkippedEmpty:
			manifest.SkippedEmpty++
		case OutcomeError:
			manifest.Errors++
			manifest.FailedFiles = append(manifest.FailedFiles, FailedFile{
				File:  filepath.Base(path),
				Error: err.Error(),
			})
			log.Warn("file failed", "file", filepath.Base(path), "error", err)
			if opts.FailFast {
				if closeErr := accum.Close(); closeErr != nil {
					log.Error("failed to close facts writer during fail-fast abort", "error", closeErr)
				}
				log.Error("aborting run (fail-fast)", "file", filepath.Base(path), "error", err)
				return manifest, err
			}
		}

		if (i+1)%progressEvery == 0 || i == len(paths)-1 {
			elapsed := now().Sub(start).Seconds()
			rate := float64(i+1) / maxFloat(elapsed, 0.001)
			log.Info("progress",
				"processed", i+1, "total", len(paths),
				"elapsed_seconds", elapsed, "files_per_second", rate,
				"ok", manifest.ProcessedOK, "repaired", manifest.RepairedTruncated,
				"skipped", manifest.SkippedEmpty, "errors", manifest.Errors,
			)
		}
	}

	if err := accum.Close(); err != nil {
		log.Error("failed to close facts writer", "error", err)
		return manifest, err
	}
	if err := FinalizeSmallTables(opts.OutputDir, accum); err != nil {
		log.Error("failed to finalize output tables", "error", err)
		return manifest, err
	}

	manifest.ElapsedSeconds = now().Sub(start).Seconds()
	manifest.Entities = len(accum.entities)
	manifest.UniqueConcepts = len(accum.concepts)
	manifest.UniqueFilings = len(accum.filings)
	manifest.RagSentences = len(accum.rag)

	if err := writeManifest(opts.OutputDir, manifest); err != nil {
		log.Error("failed to write manifest", "error", err)
		return manifest, err
	}

	log.Info("run complete",
		"total", manifest.TotalFiles, "ok", manifest.ProcessedOK,
		"repaired", manifest.RepairedTruncated, "skipped", manifest.SkippedEmpty,
		"errors", manifest.Errors, "elapsed_seconds", manifest.ElapsedSeconds,
	)

	return manifest, nil
}

// processFile runs one file through load -> validate -> extract ->
// rank -> accumulate, classifying the outcome.
func processFile(path string, accum *Accumulators, snapshotDate string) (FileOutcome, error) {
	lr, err := loadFile(path)
	if err != nil {
		if err == ErrEmptyFile || isWrapped(err, ErrEmptyFile) {
			return OutcomeSkippedEmpty, err
		}
		return OutcomeError, err
	}

	tl, err := validateTopLevel(lr.doc)
	if err != nil {
		return OutcomeError, wrapError("validate", filepath.Base(path), err)
	}

	res, err := extract(tl, lr.partial, snapshotDate)
	if err != nil {
		return OutcomeError, wrapError("extract", filepath.Base(path), err)
	}

	rank(res.facts)

	if err := accum.AddCompany(res); err != nil {
		return OutcomeError, wrapError("write", filepath.Base(path), err)
	}

	if lr.partial {
		return OutcomeRepaired, nil
	}
	return OutcomeOK, nil
}

func isWrapped(err, target error) bool {
	fe, ok := err.(*FileError)
	return ok && fe.Err == target
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// listInputFiles returns the sorted paths of all CIK*.json files in
// dir, matching the input-traversal ordering invariant.
func listInputFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "CIK*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
