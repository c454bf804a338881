package format_test

import (
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/stretchr/testify/require"
)

func TestMatchSignature(t *testing.T) {
	chk := format.MatchSignature([]byte("BM"))

	require.True(t, chk([]byte("BM......")))
	require.False(t, chk([]byte(".BM.....")))
	require.False(t, chk([]byte("B")))
}

func TestMatchAnySignature(t *testing.T) {
	chk := format.MatchAnySignature([]byte("GIF87a"), []byte("GIF89a"))

	require.True(t, chk([]byte("GIF87a..")))
	require.True(t, chk([]byte("GIF89a..")))
	require.False(t, chk([]byte("GIF88a..")))
}

func TestMatchSignatureAt(t *testing.T) {
	chk := format.MatchSignatureAt(8, []byte("WAVE"))

	require.True(t, chk([]byte("RIFF\x10\x00\x00\x00WAVEfmt ")))
	require.False(t, chk([]byte("RIFF\x10\x00\x00\x00AVI LIST")))

	// Too short to even contain the offset.
	require.False(t, chk([]byte("RIFF")))
}

func TestMatchFtypBrand(t *testing.T) {
	chk := format.MatchFtypBrand("isom", "M4A ")

	require.True(t, chk([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}))
	require.True(t, chk([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'M', '4', 'A', ' '}))
	require.False(t, chk([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'q', 't', ' ', ' '}))
	require.False(t, chk([]byte{0, 0, 0, 0x18, 'm', 'o', 'o', 'v', 'i', 's', 'o', 'm'}))
	require.False(t, chk([]byte("short")))
}
