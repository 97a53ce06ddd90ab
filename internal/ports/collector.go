package ports

import (
	"context"

	"github.com/mcdonaldj/textgather/internal/config"
)

// CollectSummary describes one finished collection run.
type CollectSummary struct {
	FilesFound int    // matched files returned by discovery
	Blocks     int    // non-empty blocks written to the output
	Bytes      int64  // bytes written to the output
	OutputPath string // final destination, empty when nothing was written
}

// CollectorService provides the collection operations needed by the CLI and
// TUI. The real implementation lives in internal/adapters/collectsvc; tests
// use mocks.MockCollectorService.
type CollectorService interface {
	// LoadConfig loads the application configuration.
	LoadConfig() (*config.Config, error)

	// OutputExists reports whether the configured destination already exists.
	OutputExists(cfg *config.Config) bool

	// Collect runs discovery, reading, and aggregation for cfg. Progress may
	// be nil. A run that produced no content returns aggregate.ErrNoMatches
	// and leaves no output artifact behind.
	Collect(ctx context.Context, cfg *config.Config, progress Progress) (CollectSummary, error)
}
