package format

import (
	"bytes"
	"io"
)

// SeekAt scans the stream for sig, looking at most n bytes past the
// reader's current position, and leaves the reader positioned at the first
// byte of the signature when found. A sliding pad of len(sig)-1 bytes is
// kept from the previous window so a signature split across two buffer
// fills is still seen.
//
// It returns whether the signature was found; an I/O error other than
// io.EOF aborts the scan.
func SeekAt(r *Reader, sig []byte, n int) (bool, error) {
	sigLen := len(sig)
	if sigLen == 0 {
		return false, nil
	}

	pad := sigLen - 1
	buf := make([]byte, pad+r.BufferSize())

	offset := 0
	for offset < n {
		if offset > 0 {
			// Carry the tail of the previous window so a split
			// signature can reassemble at the window boundary.
			copy(buf, buf[len(buf)-pad:])
		}

		peekBuf, err := r.Peek(len(buf) - pad)
		if err != nil && err != io.EOF {
			return false, err
		}

		m := len(peekBuf)
		copy(buf[pad:], peekBuf)

		if m > 0 {
			searchBuf := buf[pad : pad+m]
			if offset > 0 {
				searchBuf = buf[:pad+m]
			}

			if idx := bytes.Index(searchBuf, sig); idx >= 0 {
				discard := idx
				if offset > 0 {
					// idx is relative to the padded window;
					// the pad bytes were already consumed.
					discard -= pad
				}
				if discard < 0 {
					// The match starts inside bytes the previous
					// window already consumed; nothing left to skip.
					discard = 0
				}
				_, err = r.Discard(discard)
				return true, err
			}
		}

		if err == io.EOF {
			break
		}

		offset += m

		if _, err := r.Discard(m); err != nil {
			return false, err
		}
	}
	return false, nil
}

// SearchSignature builds a stream-search predicate that rewinds the stream
// and scans up to limit bytes for sig.
func SearchSignature(sig []byte, limit int) StreamSearch {
	return SearchAnySignature(limit, sig)
}

// SearchAnySignature builds a stream-search predicate that scans up to
// limit bytes for each of the given signatures in turn, rewinding the
// stream before every pass.
func SearchAnySignature(limit int, sigs ...[]byte) StreamSearch {
	return func(rs io.ReadSeeker) (bool, error) {
		for _, sig := range sigs {
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return false, err
			}

			found, err := SeekAt(NewReader(rs, 0), sig, limit)
			if err != nil {
				return false, err
			}
			if found {
				return true, nil
			}
		}
		return false, nil
	}
}
