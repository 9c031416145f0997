// internal/buffer/buffer.go
package buffer

import "github.com/you-n-g/obsidian-latex-suite/internal/types"

// Buffer defines the interface for text buffer operations.
// Lines are exposed for drawing; the snippet engine works on byte offsets.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte

	// Offset surface used by the edit composer and the snippet engine.
	Length() int
	Slice(from, to int) string
	ApplyEdits(edits []types.TextEdit) error
	OffsetToPosition(offset int) types.Position
	PositionToOffset(pos types.Position) int

	// Version increments on every successful ApplyEdits; used to invalidate
	// caches (e.g. parsed syntax trees) cheaply.
	Version() int

	FilePath() string
	IsModified() bool
}
