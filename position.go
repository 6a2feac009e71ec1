package utf8stream

import (
	"fmt"
	"unicode/utf8"
)

// Position locates a codepoint within decoded text.
type Position struct {
	Offset     uint64
	Line       uint64
	Column     uint64
	SkipNextLF bool
}

// MakePosition returns the Position of the start of a text.
func MakePosition() Position {
	return Position{Line: 1, Column: 1}
}

// Reset sets this position back to the start of the text.
func (pos *Position) Reset() {
	*pos = MakePosition()
}

// Advance updates the position past the character ch, which occupied size
// bytes of input.  CR, LF, and CRLF each count as one line break; tabs
// advance the column to the next 8-column tab stop.
func (pos *Position) Advance(ch rune, size int) {
	if size < 0 {
		panic("negative size")
	}
	if size == 0 {
		return
	}

	pos.Offset += uint64(size)
	skipLF := pos.SkipNextLF
	pos.SkipNextLF = false
	switch ch {
	case '\r':
		pos.Line++
		pos.Column = 1
		pos.SkipNextLF = true
	case '\n':
		if !skipLF {
			pos.Line++
			pos.Column = 1
		}
	case '\t':
		pos.Column += 8 - ((pos.Column - 1) % 8)
	default:
		pos.Column++
	}
}

// AdvanceString updates the position past every character of s, which must
// be valid UTF-8.
func (pos *Position) AdvanceString(s string) {
	for _, ch := range s {
		pos.Advance(ch, utf8.RuneLen(ch))
	}
}

func (pos Position) String() string {
	return fmt.Sprintf("line %d column %d (byte offset %d)", pos.Line, pos.Column, pos.Offset)
}
