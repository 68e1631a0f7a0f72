package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kieli-lang/kieli/internal/compiler/source"
)

func TestRangeInvariant(t *testing.T) {
	assert.NotPanics(t, func() {
		source.New(source.Position{Line: 1, Column: 0}, source.Position{Line: 1, Column: 3})
	})
	assert.Panics(t, func() {
		source.New(source.Position{Line: 2, Column: 0}, source.Position{Line: 1, Column: 0})
	})
}

func TestLineIndexRoundTrip(t *testing.T) {
	text := "fn f() {\n  let x = 1\n}\n"
	idx := source.NewLineIndex(text)

	pos := idx.Position(len("fn f() {\n  "))
	assert.Equal(t, source.Position{Line: 1, Column: 2}, pos)

	offset := idx.Offset(pos)
	assert.Equal(t, len("fn f() {\n  "), offset)
}

func TestLineIndexUTF16Column(t *testing.T) {
	// "λ" is one rune but still one UTF-16 code unit (BMP), "𝔘" is two.
	text := "let 𝔘 = 1"
	idx := source.NewLineIndex(text)
	// Offset just after the astral character.
	byteOffsetAfter := len("let 𝔘")
	pos := idx.Position(byteOffsetAfter)
	require.Equal(t, uint32(0), pos.Line)
	// "let " = 4 units, astral char = 2 units -> column 6
	assert.Equal(t, uint32(6), pos.Column)
}

func TestRangeCover(t *testing.T) {
	a := source.New(source.Position{Line: 0, Column: 0}, source.Position{Line: 0, Column: 3})
	b := source.New(source.Position{Line: 1, Column: 0}, source.Position{Line: 1, Column: 1})
	cov := a.Cover(b)
	assert.Equal(t, source.Position{Line: 0, Column: 0}, cov.Start)
	assert.Equal(t, source.Position{Line: 1, Column: 1}, cov.Stop)
}
