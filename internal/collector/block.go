package collector

import "fmt"

// Block is the result of reading one matched file. Index is the file's
// position in discovery order, so consumers of the concurrent reader can
// re-sort deliveries when they need deterministic output. A failed read
// yields a block with no name and no text.
type Block struct {
	Index int
	Name  string
	Text  string
}

// Empty reports whether the read failed and the block contributes nothing
// to the output. A readable file with empty content still gets its banner.
func (b Block) Empty() bool {
	return b.Name == ""
}

// Render formats the block for the aggregate output file.
func (b Block) Render() string {
	return fmt.Sprintf("--- File content: %s ---\n%s\n\n", b.Name, b.Text)
}
