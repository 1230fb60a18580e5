package secfacts

// Config configures a single pipeline run.
type Config struct {
	// InputDir holds the CIK*.json company-facts files to ingest.
	InputDir string
	// OutputDir is the root under which processed/ and rag/ are written.
	OutputDir string
	// Force bypasses the resumability gate and reprocesses even if the
	// facts output already exists.
	Force bool
	// FailFast aborts the run on the first file-level error instead of
	// isolating it and continuing.
	FailFast bool
	// Verbose enables debug-level logging.
	Verbose bool
}

// DefaultConfig returns a Config with Force, FailFast, and Verbose
// left at their zero values (all false) and the given directories.
func DefaultConfig(inputDir, outputDir string) Config {
	return Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}
