// Package collector implements the file-collection pipeline: recursive
// discovery of files by extension, and sequential or pooled reading of their
// contents with per-file failure isolation.
package collector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mcdonaldj/textgather/internal/ports"
	"github.com/mcdonaldj/textgather/internal/runlog"
)

// DefaultMaxWorkers bounds the concurrent reader's pool when no size is configured.
const DefaultMaxWorkers = 4

// Collector discovers and reads matched files. Failures during discovery or
// reading are reported to Log and never abort a run.
type Collector struct {
	FS         ports.FileSystem
	Log        *runlog.Logger
	MaxWorkers int
}

// New creates a Collector with the default pool size.
func New(fs ports.FileSystem, log *runlog.Logger) *Collector {
	return &Collector{FS: fs, Log: log, MaxWorkers: DefaultMaxWorkers}
}

// Discover walks each root in caller order and returns, in traversal order,
// every regular file whose extension matches ext case-insensitively. A root
// that does not exist or is not a directory contributes nothing and is
// reported as a warning; entries that cannot be visited are skipped the same
// way. Discovery itself never fails.
func (c *Collector) Discover(roots []string, ext string) []string {
	var files []string
	for _, root := range roots {
		info, err := c.FS.Stat(root)
		if err != nil || !info.IsDir() {
			c.Log.Warningf("Directory '%s' does not exist or is not a directory.", root)
			continue
		}
		c.FS.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				c.Log.Warningf("Cannot access '%s': %v. Skipping.", path, err)
				return nil
			}
			if info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(path), ext) {
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}

// readFile reads and decodes one matched file. Failures are logged and
// reported as an empty block so the rest of the batch keeps going.
func (c *Collector) readFile(index int, path string) Block {
	data, err := c.FS.ReadFile(path)
	if err != nil {
		c.Log.Errorf("Error reading file '%s': %v", path, err)
		return Block{Index: index}
	}
	if !validText(data) {
		c.Log.Warningf("File '%s' is not text or has an unsupported encoding. Skipping.", path)
		return Block{Index: index}
	}
	return Block{Index: index, Name: filepath.Base(path), Text: string(data)}
}
