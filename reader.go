package utf8stream

import (
	"fmt"
	"io"
	"strings"
)

// Options holds configurable parameters for a Reader.
type Options struct {
	// BlockSize is the number of bytes to read at a time.
	//
	// Default is 4096.
	//
	BlockSize int
}

// Reader feeds an io.Reader through a Decoder block by block, delivering
// validated text fragments.  Fragment boundaries follow block boundaries,
// except that a multi-byte character split across blocks is delivered whole
// with the fragment that completes it.
type Reader struct {
	// r is the byte stream to read.
	r io.Reader

	// dec holds any bytes read from r but not yet deliverable as text.
	dec Decoder

	// bs is the BlockSize to use.
	bs int

	// block is a reusable read buffer of length BlockSize.
	block []byte

	// pos is the position, within the decoded text, of the start of the
	// next fragment.
	pos Position

	// err is the first error encountered; it is returned by every
	// subsequent call to Next.
	err error
}

// NewReader constructs a new Reader.
//
// "NewReader(r, o)" is exactly equivalent to allocating a zero-valued Reader
// and calling "Init(r, o)" on it.
func NewReader(r io.Reader, o Options) *Reader {
	sr := new(Reader)
	sr.Init(r, o)
	return sr
}

// Init initializes this Reader with the given io.Reader and Options.
func (sr *Reader) Init(r io.Reader, o Options) {
	bs := o.BlockSize
	if bs < 0 {
		panic("BlockSize < 0")
	}
	if bs == 0 {
		bs = 4096
	}

	var block []byte
	if len(sr.block) == bs {
		block = sr.block
	} else {
		block = make([]byte, bs)
	}

	sr.r = r
	sr.dec.Reset()
	sr.bs = bs
	sr.block = block
	sr.pos.Reset()
	sr.err = nil
}

// BlockSize returns the BlockSize for the stream.
func (sr *Reader) BlockSize() int {
	return sr.bs
}

// Position returns the position, within the decoded text, of the first
// codepoint of the next fragment.
func (sr *Reader) Position() Position {
	return sr.pos
}

// Next returns the next non-empty fragment of validated text.
//
// At the end of the stream Next returns io.EOF if the final character was
// complete, or a *DecodeError wrapping ErrTruncated if the stream stopped
// mid-character.  Errors are sticky: once Next has returned a non-nil error
// it returns the same error forever.
func (sr *Reader) Next() (string, error) {
	if sr.err != nil {
		return "", sr.err
	}
	for {
		n, rerr := sr.r.Read(sr.block)
		var text string
		if n > 0 {
			var derr error
			text, derr = sr.dec.Append(sr.block[:n])
			if derr != nil {
				sr.err = derr
				return "", sr.err
			}
		}
		if rerr != nil {
			if rerr == io.EOF && !sr.dec.IsEmpty() {
				held := sr.dec.Pending()
				rerr = &DecodeError{
					Offset: sr.dec.Offset() - uint64(len(held)),
					Detail: fmt.Sprintf("%d of %d bytes received", len(held), sr.dec.want),
					Err:    ErrTruncated,
				}
			}
			sr.err = rerr
			if text != "" {
				// Deliver the final fragment now; the error surfaces on
				// the next call.
				sr.pos.AdvanceString(text)
				return text, nil
			}
			return "", sr.err
		}
		if text != "" {
			sr.pos.AdvanceString(text)
			return text, nil
		}
	}
}

// DecodeAll drains r and returns its entire content as validated text.
func DecodeAll(r io.Reader) (string, error) {
	var sr Reader
	sr.Init(r, Options{})

	var sb strings.Builder
	for {
		text, err := sr.Next()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
}
