package ports

// Progress receives best-effort completion updates during a read pass.
// Purely observational: implementations never affect the run's outcome.
// Advance may be called from multiple goroutines.
type Progress interface {
	// Start announces the total number of files about to be processed.
	Start(total int)

	// Advance records that one more file has been processed.
	Advance()

	// Done announces that the pass finished (successfully or not).
	Done()
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) Start(int) {}
func (NopProgress) Advance()  {}
func (NopProgress) Done()     {}
