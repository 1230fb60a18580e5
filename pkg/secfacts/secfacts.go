// Package secfacts is the façade over pkg/core: it wires a Config into
// a core.Run invocation and exposes the functional-options surface
// (currently just logger configuration) that callers reach for
// instead of constructing core.RunOptions directly.
package secfacts

import (
	"fmt"

	"github.com/secfacts/pipeline/pkg/core"
)

// Pipeline is the top-level entry point for a company-facts
// normalization run.
type Pipeline struct {
	cfg    Config
	logger core.Logger
}

// Option is a functional option for configuring a Pipeline.
type Option func(*Pipeline)

// WithLogger overrides the default logger. By default a Pipeline logs
// to stdout at info level, or debug level when Config.Verbose is set.
func WithLogger(l core.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New constructs a Pipeline for the given configuration.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if cfg.InputDir == "" {
		return nil, fmt.Errorf("secfacts: input dir is required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("secfacts: output dir is required")
	}

	p := &Pipeline{cfg: cfg}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		level := core.LevelInfo
		if cfg.Verbose {
			level = core.LevelDebug
		}
		p.logger = core.NewStdLogger(level)
	}

	return p, nil
}

// Run executes one pipeline pass and returns the completed run
// manifest. A non-nil error indicates a run-level failure (bad
// directories, resumability gate hit, writer failure, or a fail-fast
// abort); per-file failures are recorded in the manifest's
// FailedFiles instead of being returned here.
func (p *Pipeline) Run() (core.Manifest, error) {
	return core.Run(core.RunOptions{
		InputDir:  p.cfg.InputDir,
		OutputDir: p.cfg.OutputDir,
		Force:     p.cfg.Force,
		FailFast:  p.cfg.FailFast,
		Logger:    p.logger,
	})
}
