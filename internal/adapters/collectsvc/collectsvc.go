// Package collectsvc implements ports.CollectorService by wiring the
// collector, aggregate writer, and failure log together for one run.
package collectsvc

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mcdonaldj/textgather/internal/aggregate"
	"github.com/mcdonaldj/textgather/internal/collector"
	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/ports"
	"github.com/mcdonaldj/textgather/internal/runlog"
)

// Service is the production CollectorService.
type Service struct {
	FS ports.FileSystem

	// ErrOut receives mirrored failure messages (defaults to stderr).
	ErrOut io.Writer
}

// New creates a Service over the given filesystem.
func New(fs ports.FileSystem) *Service {
	return &Service{FS: fs, ErrOut: os.Stderr}
}

// LoadConfig loads the application configuration.
func (s *Service) LoadConfig() (*config.Config, error) {
	return config.Load()
}

// OutputExists reports whether the configured destination already exists.
func (s *Service) OutputExists(cfg *config.Config) bool {
	_, err := s.FS.Stat(config.ExpandPath(cfg.Output))
	return err == nil
}

// Collect runs the full pipeline: validate, discover, read (sequential or
// pooled), aggregate. Per-file and per-root failures are logged and
// contained; only NoMatches and write failures surface as run outcomes.
func (s *Service) Collect(ctx context.Context, cfg *config.Config, progress ports.Progress) (ports.CollectSummary, error) {
	var summary ports.CollectSummary

	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	logger, err := runlog.Open(s.FS, config.ExpandPath(cfg.Log), s.ErrOut)
	if err != nil {
		return summary, err
	}
	defer logger.Close()

	col := &collector.Collector{FS: s.FS, Log: logger, MaxWorkers: cfg.MaxWorkers}

	roots := make([]string, len(cfg.Roots))
	for i, root := range cfg.Roots {
		roots[i] = config.ExpandPath(root)
	}

	files := col.Discover(roots, cfg.Extension)
	summary.FilesFound = len(files)
	if len(files) == 0 {
		return summary, aggregate.ErrNoMatches
	}

	// Cancelling on exit unblocks the producer if the write pass bails early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var blocks <-chan collector.Block
	if cfg.Concurrent {
		blocks = col.ReadConcurrent(ctx, files, progress)
	} else {
		blocks = col.ReadSequential(ctx, files, progress)
	}

	dest := config.ExpandPath(cfg.Output)
	res, err := aggregate.NewWriter(s.FS).WriteBlocks(dest, blocks)
	summary.Blocks = res.Blocks
	summary.Bytes = res.Bytes
	if err != nil {
		if !errors.Is(err, aggregate.ErrNoMatches) {
			logger.Errorf("Error writing output file '%s': %v", dest, err)
		}
		return summary, err
	}

	summary.OutputPath = dest
	return summary, nil
}

// Compile-time check that Service implements ports.CollectorService.
var _ ports.CollectorService = (*Service)(nil)
