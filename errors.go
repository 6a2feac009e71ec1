package utf8stream

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	// ErrMalformedStart indicates a byte that can begin no UTF-8 codepoint:
	// neither ASCII nor a multi-byte lead byte.
	ErrMalformedStart = errors.New("malformed start byte")

	// ErrMalformedContinuation indicates that a continuation byte was
	// expected but a byte outside 0x80-0xBF arrived.
	ErrMalformedContinuation = errors.New("malformed continuation byte")

	// ErrInvalidSequence indicates bytes that passed the structural checks
	// but do not form valid UTF-8, such as an overlong encoding or an
	// encoded surrogate.
	ErrInvalidSequence = errors.New("invalid UTF-8 sequence")
)

// Stream errors
var (
	// ErrTruncated indicates that a stream ended in the middle of a
	// multi-byte codepoint.
	ErrTruncated = errors.New("stream truncated mid-character")
)

// DecodeError is the error reported for every validation failure.  Err is one
// of the sentinel values above and Offset is the absolute byte offset within
// the input stream where the failure was detected.
type DecodeError struct {
	Offset uint64
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("utf8stream: %v (%s) at input offset %d", e.Err, e.Detail, e.Offset)
	}
	return fmt.Sprintf("utf8stream: %v at input offset %d", e.Err, e.Offset)
}

// Unwrap makes the sentinel classification visible to errors.Is.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
