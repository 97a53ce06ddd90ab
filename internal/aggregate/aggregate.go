// Package aggregate streams text blocks into the final output artifact.
package aggregate

import (
	"errors"
	"fmt"
	"io"

	"github.com/mcdonaldj/textgather/internal/collector"
	"github.com/mcdonaldj/textgather/internal/ports"
)

// ErrNoMatches reports that a run produced no content: either discovery
// found no files, or every matched file failed to read. No output artifact
// is left behind in that case.
var ErrNoMatches = errors.New("no files with the requested extension produced any content")

// Summary describes what a write pass produced.
type Summary struct {
	Blocks int
	Bytes  int64
}

// Writer drains a block sequence into a destination file through a temporary
// file, so a failed or empty run never leaves a partial artifact behind.
type Writer struct {
	FS ports.FileSystem
}

// NewWriter creates a Writer over the given filesystem.
func NewWriter(fs ports.FileSystem) *Writer {
	return &Writer{FS: fs}
}

// WriteBlocks writes every non-empty block, in delivery order, to dest.
// The temporary file is renamed into place only after at least one block was
// written; a run with zero non-empty blocks removes it and returns
// ErrNoMatches. On a write failure the caller should cancel the producing
// context so the block channel unblocks.
func (w *Writer) WriteBlocks(dest string, blocks <-chan collector.Block) (Summary, error) {
	var summary Summary

	tmp := dest + ".tmp"
	f, err := w.FS.Create(tmp)
	if err != nil {
		return summary, fmt.Errorf("creating %s: %w", tmp, err)
	}

	for block := range blocks {
		if block.Empty() {
			continue
		}
		n, err := io.WriteString(f, block.Render())
		summary.Bytes += int64(n)
		if err != nil {
			f.Close()
			w.FS.Remove(tmp)
			return summary, fmt.Errorf("writing %s: %w", tmp, err)
		}
		summary.Blocks++
	}

	if err := f.Close(); err != nil {
		w.FS.Remove(tmp)
		return summary, fmt.Errorf("closing %s: %w", tmp, err)
	}

	if summary.Blocks == 0 {
		w.FS.Remove(tmp)
		return Summary{}, ErrNoMatches
	}

	if err := w.FS.Rename(tmp, dest); err != nil {
		w.FS.Remove(tmp)
		return summary, fmt.Errorf("renaming %s to %s: %w", tmp, dest, err)
	}

	return summary, nil
}

// FormatSize formats bytes as human-readable
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
