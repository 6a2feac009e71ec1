// Package utf8stream decodes UTF-8 text incrementally from byte streams
// whose chunk boundaries may fall anywhere, including in the middle of a
// multi-byte character.
package utf8stream

import (
	"fmt"
	"unicode/utf8"
)

// decodeState tracks whether a Decoder sits between codepoints or is
// accumulating the continuation bytes of a multi-byte codepoint.
type decodeState uint8

const (
	stateStart decodeState = iota
	stateMulti
)

// Decoder is an incremental, validating UTF-8 decoder.
//
// Each call to Append returns every codepoint completed by that chunk,
// including any finished from bytes held back by earlier calls.  An
// incomplete multi-byte sequence at the end of a chunk is retained and
// completed by a later chunk, so no byte is ever lost or delivered twice
// across chunk boundaries.
//
// The zero value is a ready Decoder.  A Decoder is not safe for concurrent
// use; exactly one caller must drive it at a time.
type Decoder struct {
	// state is stateStart iff pending is empty.
	state decodeState

	// pending holds the bytes of the in-progress multi-byte codepoint.
	// It is drained into the output the instant it reaches want bytes.
	pending []byte

	// want is the total encoded length (2, 3, or 4) of the codepoint being
	// assembled.  Meaningless in stateStart.
	want int

	// off is the count of input bytes accepted so far.
	off uint64
}

// NewDecoder constructs a new Decoder.
//
// "NewDecoder()" is exactly equivalent to "new(Decoder)".
func NewDecoder() *Decoder {
	return new(Decoder)
}

// Append consumes the next chunk of the byte stream and returns the text of
// every codepoint it completes.  A trailing incomplete multi-byte sequence is
// held back and never appears in the returned text.
//
// A non-nil error is always a *DecodeError.  Validation failure is terminal:
// the Decoder's state is no longer trustworthy and the stream must be
// abandoned (or the Decoder Reset for a new stream).
func (d *Decoder) Append(chunk []byte) (string, error) {
	// Fast path: with nothing pending, a chunk that is well-formed UTF-8 in
	// its entirety needs no per-byte work.  Failing this check is not itself
	// an error, since the chunk may simply end mid-character.
	if d.state == stateStart && utf8.Valid(chunk) {
		d.off += uint64(len(chunk))
		return string(chunk), nil
	}

	start := d.off
	out := make([]byte, 0, len(chunk)+len(d.pending))
	for _, b := range chunk {
		switch d.state {
		case stateStart:
			switch {
			case b < 0x80:
				out = append(out, b)
			case b >= 0xC0 && b <= 0xF4:
				d.want = leadLen(b)
				if d.pending == nil {
					d.pending = make([]byte, 0, utf8.UTFMax)
				}
				d.pending = append(d.pending, b)
				d.state = stateMulti
			default:
				// Either an orphan continuation byte (0x80-0xBF) or a lead
				// byte for a codepoint beyond U+10FFFF (0xF5-0xFF).
				return "", d.errByte(ErrMalformedStart, b)
			}
		case stateMulti:
			if b < 0x80 || b >= 0xC0 {
				return "", d.errByte(ErrMalformedContinuation, b)
			}
			d.pending = append(d.pending, b)
			if len(d.pending) == d.want {
				out = append(out, d.pending...)
				d.pending = d.pending[:0]
				d.state = stateStart
			}
		}
		d.off++
	}

	// The per-byte pass only checks shape.  Overlong encodings, encoded
	// surrogates, and out-of-range codepoints are only visible once the
	// codepoint is fully assembled.
	if !utf8.Valid(out) {
		return "", &DecodeError{Offset: start, Err: ErrInvalidSequence}
	}
	return string(out), nil
}

// IsEmpty reports whether the Decoder is exactly on a codepoint boundary,
// with no partial character held back.  A false result at end of stream
// means the final character was truncated.
func (d *Decoder) IsEmpty() bool {
	return len(d.pending) == 0
}

// Pending returns a copy of the bytes held back from the in-progress
// multi-byte codepoint.  It is empty whenever IsEmpty is true.
func (d *Decoder) Pending() []byte {
	return append([]byte(nil), d.pending...)
}

// Offset returns the number of input bytes accepted so far.  Held-back
// bytes count as accepted.
func (d *Decoder) Offset() uint64 {
	return d.off
}

// Reset returns the Decoder to its initial state for reuse on a new stream.
// Any held-back bytes are discarded.
func (d *Decoder) Reset() {
	d.state = stateStart
	d.pending = d.pending[:0]
	d.want = 0
	d.off = 0
}

func (d *Decoder) errByte(sentinel error, b byte) error {
	return &DecodeError{
		Offset: d.off,
		Detail: fmt.Sprintf("byte 0x%02X", b),
		Err:    sentinel,
	}
}

// leadLen classifies a lead byte (>= 0xC0) by the total encoded length its
// high bits announce.
func leadLen(b byte) int {
	switch {
	case b >= 0xF0:
		return 4
	case b >= 0xE0:
		return 3
	default:
		return 2
	}
}
