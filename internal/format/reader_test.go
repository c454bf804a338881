package format_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/stretchr/testify/require"
)

func TestReader_TracksConsumedBytes(t *testing.T) {
	testData := []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	r := format.NewReader(bytes.NewReader(testData), 16)
	require.Equal(t, 16, r.BufferSize())
	require.Equal(t, 0, r.Offset())

	// Peeking must not consume.
	peeked, err := r.Peek(4)
	require.NoError(t, err)
	require.Equal(t, []byte("0123"), peeked)
	require.Equal(t, 0, r.Offset())

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('0'), b)
	require.Equal(t, 1, r.Offset())

	n, err := r.Discard(9)
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, 10, r.Offset())

	buf := make([]byte, 6)
	_, err = io.ReadFull(r, buf)
	require.NoError(t, err)
	require.Equal(t, []byte("ABCDEF"), buf)
	require.Equal(t, 16, r.Offset())
}

func TestReader_PeekAtEOF(t *testing.T) {
	r := format.NewReader(bytes.NewReader([]byte("abc")), 16)

	peeked, err := r.Peek(16)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, []byte("abc"), peeked)
}
