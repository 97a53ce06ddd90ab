package cli

import (
	"fmt"
	"io"
	"sync"
)

// textProgress prints a carriage-return counter while files are processed.
// Best-effort only; it never affects the run.
type textProgress struct {
	mu    sync.Mutex
	w     io.Writer
	total int
	done  int
}

func newTextProgress(w io.Writer) *textProgress {
	return &textProgress{w: w}
}

func (p *textProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	fmt.Fprintf(p.w, "\rProcessing files... 0/%d", p.total)
}

func (p *textProgress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	fmt.Fprintf(p.w, "\rProcessing files... %d/%d", p.done, p.total)
}

func (p *textProgress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}
