package mocks

import (
	"context"

	"github.com/mcdonaldj/textgather/internal/config"
	"github.com/mcdonaldj/textgather/internal/ports"
)

// MockCollectorService implements ports.CollectorService for testing.
type MockCollectorService struct {
	// ConfigResult and ConfigErr are returned by LoadConfig.
	ConfigResult *config.Config
	ConfigErr    error

	// Exists is returned by OutputExists.
	Exists bool

	// Summary and CollectErr are returned by Collect.
	Summary    ports.CollectSummary
	CollectErr error

	// CollectCalls records each config passed to Collect.
	CollectCalls []*config.Config

	// Progress replays recorded (total, advances) against the caller's
	// progress reporter before Collect returns, when Total > 0.
	ProgressTotal int
}

// NewMockCollectorService creates a mock service with a default config.
func NewMockCollectorService() *MockCollectorService {
	return &MockCollectorService{ConfigResult: config.DefaultConfig()}
}

// LoadConfig loads the configured result.
func (s *MockCollectorService) LoadConfig() (*config.Config, error) {
	return s.ConfigResult, s.ConfigErr
}

// OutputExists reports the configured answer.
func (s *MockCollectorService) OutputExists(cfg *config.Config) bool {
	return s.Exists
}

// Collect records the call, drives progress if configured, and returns the
// canned result.
func (s *MockCollectorService) Collect(ctx context.Context, cfg *config.Config, progress ports.Progress) (ports.CollectSummary, error) {
	s.CollectCalls = append(s.CollectCalls, cfg)
	if progress != nil && s.ProgressTotal > 0 {
		progress.Start(s.ProgressTotal)
		for i := 0; i < s.ProgressTotal; i++ {
			progress.Advance()
		}
		progress.Done()
	}
	return s.Summary, s.CollectErr
}

// Compile-time check that MockCollectorService implements ports.CollectorService.
var _ ports.CollectorService = (*MockCollectorService)(nil)
