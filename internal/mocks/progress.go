package mocks

import "sync"

// MockProgress implements ports.Progress, recording updates for assertions.
// Safe for concurrent Advance calls, as the concurrent reader requires.
type MockProgress struct {
	mu       sync.Mutex
	Total    int
	Advanced int
	Started  bool
	Finished bool
}

// NewMockProgress creates a new mock progress reporter.
func NewMockProgress() *MockProgress {
	return &MockProgress{}
}

// Start announces the total number of files about to be processed.
func (p *MockProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Started = true
	p.Total = total
}

// Advance records that one more file has been processed.
func (p *MockProgress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Advanced++
}

// Done announces that the pass finished.
func (p *MockProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Finished = true
}

// Count returns the number of Advance calls so far.
func (p *MockProgress) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Advanced
}
