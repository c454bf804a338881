package format

import "bytes"

// MatchSignature returns a header check that passes when the buffer starts
// with sig.
func MatchSignature(sig []byte) HeaderCheck {
	return func(header []byte) bool {
		return bytes.HasPrefix(header, sig)
	}
}

// MatchAnySignature returns a header check that passes when the buffer
// starts with any of the given signatures.
func MatchAnySignature(sigs ...[]byte) HeaderCheck {
	return func(header []byte) bool {
		for _, sig := range sigs {
			if bytes.HasPrefix(header, sig) {
				return true
			}
		}
		return false
	}
}

// MatchSignatureAt returns a header check that passes when sig occurs at
// the given byte offset.
func MatchSignatureAt(offset int, sig []byte) HeaderCheck {
	return func(header []byte) bool {
		if len(header) < offset+len(sig) {
			return false
		}
		return bytes.Equal(header[offset:offset+len(sig)], sig)
	}
}

// MatchFtypBrand returns a header check for the ISO BMFF family (mp4, m4a,
// mov, ...): a size field, the "ftyp" box type at offset 4, and a major
// brand at offset 8.
func MatchFtypBrand(brands ...string) HeaderCheck {
	return func(header []byte) bool {
		if len(header) < 12 {
			return false
		}
		if !bytes.Equal(header[4:8], []byte("ftyp")) {
			return false
		}
		major := header[8:12]
		for _, b := range brands {
			if bytes.Equal(major, []byte(b)) {
				return true
			}
		}
		return false
	}
}
