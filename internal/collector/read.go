package collector

import (
	"context"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mcdonaldj/textgather/internal/ports"
)

// validText reports whether data decodes as UTF-8 text.
func validText(data []byte) bool {
	return utf8.Valid(data)
}

// ReadSequential reads files strictly in input order, one at a time,
// delivering one block per file on the returned channel. Output order
// exactly matches input order. The channel closes once every file has been
// visited or ctx is cancelled.
func (c *Collector) ReadSequential(ctx context.Context, files []string, progress ports.Progress) <-chan Block {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	out := make(chan Block)
	go func() {
		defer close(out)
		defer progress.Done()
		progress.Start(len(files))
		for i, path := range files {
			if ctx.Err() != nil {
				return
			}
			block := c.readFile(i, path)
			progress.Advance()
			select {
			case out <- block:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// ReadConcurrent reads files on a bounded pool of MaxWorkers goroutines.
// All files are submitted up front; blocks are delivered in completion
// order, each tagged with its discovery-order Index. Failure semantics match
// ReadSequential: one bad file never aborts the batch. Cancelling ctx stops
// new reads from starting; the channel closes once in-flight reads finish.
func (c *Collector) ReadConcurrent(ctx context.Context, files []string, progress ports.Progress) <-chan Block {
	if progress == nil {
		progress = ports.NopProgress{}
	}
	workers := c.MaxWorkers
	if workers < 1 {
		workers = DefaultMaxWorkers
	}
	out := make(chan Block)
	go func() {
		defer close(out)
		defer progress.Done()
		progress.Start(len(files))

		var g errgroup.Group
		g.SetLimit(workers)
		for i, path := range files {
			if ctx.Err() != nil {
				break
			}
			i, path := i, path
			g.Go(func() error {
				block := c.readFile(i, path)
				progress.Advance()
				select {
				case out <- block:
				case <-ctx.Done():
				}
				return nil
			})
		}
		g.Wait()
	}()
	return out
}
