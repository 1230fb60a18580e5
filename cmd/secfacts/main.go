// Command secfacts ingests SEC EDGAR company-facts JSON files and
// emits a star-schema of normalized Parquet tables plus a RAG
// sentence index.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/secfacts/pipeline/pkg/secfacts"
)

var (
	inputDir  string
	outputDir string
	force     bool
	failFast  bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "secfacts",
	Short: "Normalize SEC EDGAR company-facts JSON into columnar tables",
	Long: `secfacts reads a directory of CIK*.json company-facts documents,
repairs truncated files, deduplicates revision history per company,
and writes entity, concept, fact, and filing tables plus a RAG
sentence index as Parquet files.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.Flags().StringVar(&inputDir, "input-dir", "", "directory of CIK*.json input files (required)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "output root for processed/ and rag/ (required)")
	rootCmd.Flags().BoolVar(&force, "force", false, "bypass the resumability gate and reprocess")
	rootCmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort the run on the first file error")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.MarkFlagRequired("input-dir")
	rootCmd.MarkFlagRequired("output-dir")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := secfacts.Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Force:     force,
		FailFast:  failFast,
		Verbose:   verbose,
	}

	pipeline, err := secfacts.New(cfg)
	if err != nil {
		return err
	}

	manifest, err := pipeline.Run()
	if err != nil {
		if err == secfacts.ErrAlreadyProcessed {
			fmt.Fprintln(os.Stdout, "facts output already exists, use --force to reprocess")
			return nil
		}
		return err
	}

	fmt.Fprintf(os.Stdout,
		"processed %d files: %d ok (%d repaired), %d skipped, %d errors in %.1fs\n",
		manifest.TotalFiles, manifest.ProcessedOK, manifest.RepairedTruncated,
		manifest.SkippedEmpty, manifest.Errors, manifest.ElapsedSeconds,
	)

	if manifest.Errors > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d file(s) failed, see manifest.json", manifest.Errors)
	}
	return nil
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
