// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/you-n-g/obsidian-latex-suite/internal/types"
)

// SliceBuffer stores the document as a slice of lines (without trailing
// newlines). Offsets treat the document as the lines joined by single '\n'
// bytes.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool // Track if buffer has unsaved changes
	version  int
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines:    [][]byte{[]byte("")},
		modified: false,
	}
}

// NewSliceBufferFromString creates a buffer holding the given content.
// Mostly useful in tests.
func NewSliceBufferFromString(content string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.setContent([]byte(content))
	sb.modified = false
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			sb.version++
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	sb.filePath = filePath
	sb.version++
	return nil
}

// Save writes the buffer content to the stored filePath.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := sb.Bytes()
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// Lines returns the underlying line slices.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the bytes of one line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes returns the whole document joined by newlines.
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// Length returns the document length in bytes.
func (sb *SliceBuffer) Length() int {
	n := 0
	for _, line := range sb.lines {
		n += len(line)
	}
	// One newline between each pair of lines
	return n + len(sb.lines) - 1
}

// Slice returns the document text in [from, to). Out-of-range offsets are
// clamped.
func (sb *SliceBuffer) Slice(from, to int) string {
	content := sb.Bytes()
	if from < 0 {
		from = 0
	}
	if to > len(content) {
		to = len(content)
	}
	if from > to {
		return ""
	}
	return string(content[from:to])
}

// ApplyEdits applies an ordered, non-overlapping edit list as one atomic
// mutation. The whole list is validated before anything changes.
func (sb *SliceBuffer) ApplyEdits(edits []types.TextEdit) error {
	if len(edits) == 0 {
		return nil
	}
	length := sb.Length()
	prevEnd := 0
	for _, e := range edits {
		if e.From < 0 || e.From > e.To || e.To > length {
			return fmt.Errorf("edit %s out of bounds for buffer length %d", e, length)
		}
		if e.From < prevEnd {
			return fmt.Errorf("edit %s overlaps previous edit", e)
		}
		prevEnd = e.To
	}

	content := sb.Bytes()
	var out []byte
	pos := 0
	for _, e := range edits {
		out = append(out, content[pos:e.From]...)
		out = append(out, e.Insert...)
		pos = e.To
	}
	out = append(out, content[pos:]...)

	sb.setContent(out)
	sb.modified = true
	sb.version++
	return nil
}

// OffsetToPosition converts a byte offset into a line/column position.
// Columns are rune indexes. Offsets are clamped to the document.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	remaining := offset
	for i, line := range sb.lines {
		if remaining <= len(line) {
			return types.Position{Line: i, Col: byteOffsetToRuneIndex(line, remaining)}
		}
		remaining -= len(line) + 1 // line plus its newline
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// PositionToOffset converts a line/column position to a byte offset,
// clamping both line and column.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(sb.lines) {
		return sb.Length()
	}
	offset := 0
	for i := 0; i < pos.Line; i++ {
		offset += len(sb.lines[i]) + 1
	}
	return offset + runeIndexToByteOffset(sb.lines[pos.Line], pos.Col)
}

// Version returns the mutation counter.
func (sb *SliceBuffer) Version() int {
	return sb.version
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// FilePath returns the path the buffer was loaded from or saved to.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// setContent replaces the whole document, keeping the one-line convention.
func (sb *SliceBuffer) setContent(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lineCopy := make([]byte, len(p))
		copy(lineCopy, p)
		lines[i] = lineCopy
	}
	if len(lines) == 0 {
		lines = [][]byte{[]byte("")}
	}
	sb.lines = lines
}

// runeIndexToByteOffset converts a rune index to a byte offset within a line,
// clamping past-end indexes to the line length.
func runeIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	runeCount := 0
	for byteOffset < len(line) && runeCount < runeIndex {
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		runeCount++
	}
	return byteOffset
}

// byteOffsetToRuneIndex converts a byte offset to a rune index within a line.
func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	current := 0
	for current < byteOffset {
		_, size := utf8.DecodeRune(line[current:])
		if current+size > byteOffset {
			break
		}
		current += size
		runeIndex++
	}
	return runeIndex
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
