package utf8stream

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderBlockSizes(t *testing.T) {
	for _, bs := range []int{1, 2, 3, 5, 7, 64, 4096} {
		var sr Reader
		sr.Init(strings.NewReader(corpus), Options{BlockSize: bs})
		assert.Equal(t, bs, sr.BlockSize())

		var sb strings.Builder
		for {
			text, err := sr.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err, "BlockSize=%d", bs)
			require.NotEmpty(t, text, "BlockSize=%d", bs)
			sb.WriteString(text)
		}
		require.Equal(t, corpus, sb.String(), "BlockSize=%d", bs)
	}
}

func TestReaderDefaults(t *testing.T) {
	sr := NewReader(strings.NewReader("x"), Options{})
	assert.Equal(t, 4096, sr.BlockSize())
	assert.Panics(t, func() {
		NewReader(strings.NewReader("x"), Options{BlockSize: -1})
	})
}

func TestReaderTruncated(t *testing.T) {
	raw := []byte("日本語")
	require.Len(t, raw, 9)

	sr := NewReader(bytes.NewReader(raw[:8]), Options{BlockSize: 4})
	var sb strings.Builder
	var err error
	for err == nil {
		var text string
		text, err = sr.Next()
		sb.WriteString(text)
	}
	assert.Equal(t, "日本", sb.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, uint64(6), derr.Offset)

	// Sticky.
	_, again := sr.Next()
	assert.Equal(t, err, again)
}

func TestReaderCleanEOF(t *testing.T) {
	sr := NewReader(strings.NewReader("done"), Options{BlockSize: 2})
	text, err := sr.Next()
	require.NoError(t, err)
	assert.Equal(t, "do", text)

	text, err = sr.Next()
	require.NoError(t, err)
	assert.Equal(t, "ne", text)

	_, err = sr.Next()
	assert.Equal(t, io.EOF, err)
	_, err = sr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderInvalidInput(t *testing.T) {
	sr := NewReader(bytes.NewReader([]byte{'h', 'i', 0x80}), Options{BlockSize: 8})
	text, err := sr.Next()
	require.Error(t, err)
	assert.Equal(t, "", text)
	assert.ErrorIs(t, err, ErrMalformedStart)
}

func TestReaderPosition(t *testing.T) {
	sr := NewReader(strings.NewReader("ab\ncd"), Options{BlockSize: 2})
	assert.Equal(t, MakePosition(), sr.Position())

	_, err := sr.Next()
	require.NoError(t, err)
	pos := sr.Position()
	assert.Equal(t, uint64(2), pos.Offset)
	assert.Equal(t, uint64(1), pos.Line)
	assert.Equal(t, uint64(3), pos.Column)

	for err == nil {
		_, err = sr.Next()
	}
	require.Equal(t, io.EOF, err)
	pos = sr.Position()
	assert.Equal(t, uint64(5), pos.Offset)
	assert.Equal(t, uint64(2), pos.Line)
	assert.Equal(t, uint64(3), pos.Column)
}

func TestReaderInitReuse(t *testing.T) {
	var sr Reader
	sr.Init(bytes.NewReader([]byte{0xE2, 0x88}), Options{BlockSize: 8})
	var err error
	for err == nil {
		_, err = sr.Next()
	}
	require.ErrorIs(t, err, ErrTruncated)

	// Init clears the sticky error and any held-back bytes.
	sr.Init(strings.NewReader("clean"), Options{BlockSize: 8})
	text, err := sr.Next()
	require.NoError(t, err)
	assert.Equal(t, "clean", text)
	_, err = sr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDecodeAll(t *testing.T) {
	text, err := DecodeAll(strings.NewReader(corpus))
	require.NoError(t, err)
	assert.Equal(t, corpus, text)

	_, err = DecodeAll(bytes.NewReader([]byte{0xE2, 0x88}))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DecodeAll(bytes.NewReader([]byte{0xC0, 0xAF}))
	assert.ErrorIs(t, err, ErrInvalidSequence)
}
