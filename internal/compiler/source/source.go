// Package source provides position and range arithmetic over UTF-8 source
// text addressed in UTF-16 code units, for LSP compatibility (§3.2).
package source

import (
	"fmt"
	"unicode/utf16"
)

// Position is a 0-based line/column pair. Column counts UTF-16 code units,
// matching the LSP wire protocol rather than bytes or runes.
type Position struct {
	Line   uint32
	Column uint32
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LessEqual reports whether p sorts at or before other.
func (p Position) LessEqual(other Position) bool {
	return p == other || p.Less(other)
}

// Range is a half-open span: Start is inclusive, Stop is exclusive (§3.2).
// The Start <= Stop invariant (§3.7) is the caller's responsibility; New
// panics if it is violated, since a backwards range is always a bug in the
// producing stage, not a user error.
type Range struct {
	Start Position
	Stop  Position
}

// New builds a Range, enforcing the Start <= Stop invariant.
func New(start, stop Position) Range {
	if stop.Less(start) {
		panic(fmt.Sprintf("source: invalid range, stop %s precedes start %s", stop, start))
	}
	return Range{Start: start, Stop: stop}
}

// Zero is the empty range at the document origin, used for synthetic nodes
// that have no corresponding source text (e.g. an inserted `()` from the
// else-less-if desugaring, §4.3).
var Zero = Range{}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.Stop)
}

// Contains reports whether pos falls within [r.Start, r.Stop).
func (r Range) Contains(pos Position) bool {
	return r.Start.LessEqual(pos) && pos.Less(r.Stop)
}

// Cover returns the smallest Range containing both r and other.
func (r Range) Cover(other Range) Range {
	start, stop := r.Start, r.Stop
	if other.Start.Less(start) {
		start = other.Start
	}
	if stop.Less(other.Stop) {
		stop = other.Stop
	}
	return Range{Start: start, Stop: stop}
}

// LineIndex supports O(log n) byte-offset -> Position conversion for a
// document's full text, built once per revision (§3.8: arenas rebuild on
// document change).
type LineIndex struct {
	text        string
	lineOffsets []int // byte offset of the start of each line
}

// NewLineIndex scans text once to record line-start byte offsets.
func NewLineIndex(text string) *LineIndex {
	offsets := []int{0}
	for i, r := range text {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &LineIndex{text: text, lineOffsets: offsets}
}

// Position converts a byte offset into the text to a Position, counting
// columns in UTF-16 code units per line.
func (idx *LineIndex) Position(byteOffset int) Position {
	line := idx.lineForOffset(byteOffset)
	lineStart := idx.lineOffsets[line]
	col := utf16Len(idx.text[lineStart:byteOffset])
	return Position{Line: uint32(line), Column: uint32(col)}
}

// Offset converts a Position back to a byte offset into the text.
func (idx *LineIndex) Offset(pos Position) int {
	line := int(pos.Line)
	if line < 0 {
		line = 0
	}
	if line >= len(idx.lineOffsets) {
		return len(idx.text)
	}
	lineStart := idx.lineOffsets[line]
	lineEnd := len(idx.text)
	if line+1 < len(idx.lineOffsets) {
		lineEnd = idx.lineOffsets[line+1]
	}
	return offsetForUTF16Column(idx.text[lineStart:lineEnd], int(pos.Column)) + lineStart
}

func (idx *LineIndex) lineForOffset(byteOffset int) int {
	lo, hi := 0, len(idx.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lineOffsets[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

func offsetForUTF16Column(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		units += len(utf16.Encode([]rune{r}))
	}
	return len(line)
}
