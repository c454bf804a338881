package format

import (
	"bufio"
	"io"
)

// DefaultReaderSize is the buffer size used by stream searches when the
// caller does not pick one.
const DefaultReaderSize = 64 * 1024

// Reader is a buffered forward-only reader used by stream searches. It
// tracks how many bytes were consumed so a search can honor a byte limit.
type Reader struct {
	r *bufio.Reader
	n int
}

// NewReader wraps r in a Reader with the given buffer size. A size of 0
// means DefaultReaderSize.
func NewReader(r io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultReaderSize
	}
	return &Reader{r: bufio.NewReaderSize(r, size)}
}

func (r *Reader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	if n > 0 {
		r.n += n
	}
	return n, err
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == nil {
		r.n++
	}
	return b, err
}

// Peek returns the next n bytes without consuming them. It may return fewer
// bytes together with io.EOF near the end of the stream.
func (r *Reader) Peek(n int) ([]byte, error) {
	return r.r.Peek(n)
}

// Discard skips the next n bytes.
func (r *Reader) Discard(n int) (int, error) {
	m, err := r.r.Discard(n)
	r.n += m
	return m, err
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.n }

// BufferSize returns the size of the underlying buffer.
func (r *Reader) BufferSize() int { return r.r.Size() }
