package format_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_ResolvesBuiltinHeaders(t *testing.T) {
	resolver := format.NewResolver(format.DefaultRegistry(), 0)

	tests := []struct {
		name string
		data []byte
		id   int
	}{
		{
			name: "png",
			data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0},
			id:   format.FormatPNG,
		},
		{
			name: "gif",
			data: []byte("GIF89a......"),
			id:   format.FormatGIF,
		},
		{
			name: "jpeg",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'},
			id:   format.FormatJPEG,
		},
		{
			name: "wav",
			data: []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
			id:   format.FormatWAV,
		},
		{
			name: "mp4",
			data: []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'},
			id:   format.FormatMP4,
		},
		{
			name: "flac",
			data: []byte("fLaC\x00\x00\x00\x22"),
			id:   format.FormatFLAC,
		},
		{
			name: "sqlite",
			data: []byte("SQLite format 3\x00...."),
			id:   format.FormatSQLite,
		},
		{
			name: "pcx",
			data: []byte{0x0A, 0x05, 0x01, 0x08, 0, 0, 0, 0},
			id:   format.FormatPCX,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, match, err := resolver.Resolve(context.Background(), bytes.NewReader(tt.data))
			require.NoError(t, err)
			require.Equal(t, tt.id, d.ID())
			require.Equal(t, format.MatchHeader, match)
		})
	}
}

func TestDefaultRegistry_FindsMarkerPastHeader(t *testing.T) {
	resolver := format.NewResolver(format.DefaultRegistry(), 0)

	// %PDF- may be preceded by junk as long as it shows up within the
	// first kilobyte.
	data := append(bytes.Repeat([]byte{'x'}, 600), []byte("%PDF-1.7")...)

	d, match, err := resolver.Resolve(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.FormatPDF, d.ID())
	require.Equal(t, format.MatchSearch, match)
}

func TestDefaultRegistry_Lookups(t *testing.T) {
	reg := format.DefaultRegistry()

	mp3 := reg.ByName("mp3")
	require.NotNil(t, mp3)
	require.Equal(t, format.FormatMP3, mp3.ID())
	require.True(t, mp3.IsValidMimeType("audio/mpeg"))

	descs := reg.ByExtension(".JPG")
	require.Len(t, descs, 1)
	require.Equal(t, format.FormatJPEG, descs[0].ID())

	require.NotEmpty(t, reg.ByMimeType("application/zip"))
	require.Nil(t, reg.ByID(0))
}
