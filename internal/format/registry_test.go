package format_test

import (
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RejectsDuplicateIDs(t *testing.T) {
	reg := format.NewRegistry()

	require.NoError(t, reg.Register(format.NewDescriptor(1, "Bitmap", "BMP")))

	err := reg.Register(format.NewDescriptor(1, "Portable Network Graphics", "PNG"))
	require.Error(t, err)
	require.Equal(t, 1, reg.Len())
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	reg := format.NewRegistry()

	require.NoError(t, reg.Register(format.NewDescriptor(1, "Bitmap", "BMP")))

	err := reg.Register(format.NewDescriptor(2, "bitmap", "DIB"))
	require.Error(t, err)
}

func TestRegistry_Lookups(t *testing.T) {
	reg := format.NewRegistry()

	bmp := format.NewDescriptor(1, "Bitmap", "BMP")
	bmp.AddExtension("bmp")
	bmp.AddMimeType("image/bmp")

	png := format.NewDescriptor(2, "Portable Network Graphics", "PNG")
	png.AddExtension("png")
	png.AddMimeType("image/png")

	require.NoError(t, reg.Register(bmp))
	require.NoError(t, reg.Register(png))

	require.Equal(t, bmp, reg.ByID(1))
	require.Nil(t, reg.ByID(99))

	require.Equal(t, png, reg.ByName("portable network graphics"))
	require.Equal(t, png, reg.ByName("png"))
	require.Nil(t, reg.ByName("flac"))

	require.Equal(t, []*format.Descriptor{bmp}, reg.ByExtension(".BMP"))
	require.Empty(t, reg.ByExtension("gif"))

	require.Equal(t, []*format.Descriptor{png}, reg.ByMimeType("IMAGE/PNG"))
}

func TestRegistry_SniffMatchesSignaturePrefixes(t *testing.T) {
	reg := format.NewRegistry()

	bmp := format.NewDescriptor(1, "Bitmap", "BMP")
	gif := format.NewDescriptor(2, "Graphics Interchange Format", "GIF")

	require.NoError(t, reg.Register(bmp, []byte("BM")))
	require.NoError(t, reg.Register(gif, []byte("GIF87a"), []byte("GIF89a")))

	require.Equal(t, 3, reg.Signatures())

	var matched []*format.Descriptor
	reg.Sniff([]byte("GIF89a..."), func(d *format.Descriptor) bool {
		matched = append(matched, d)
		return false
	})
	require.Equal(t, []*format.Descriptor{gif}, matched)

	matched = nil
	reg.Sniff([]byte("no signature here"), func(d *format.Descriptor) bool {
		matched = append(matched, d)
		return false
	})
	require.Empty(t, matched)
}

func TestRegistry_SniffStopsWhenHandled(t *testing.T) {
	reg := format.NewRegistry()

	a := format.NewDescriptor(1, "A", "")
	b := format.NewDescriptor(2, "B", "")

	// Same signature claimed twice: the walk must stop at the first
	// handler returning true.
	require.NoError(t, reg.Register(a, []byte("XX")))
	require.NoError(t, reg.Register(b, []byte("XX")))

	calls := 0
	reg.Sniff([]byte("XXYY"), func(d *format.Descriptor) bool {
		calls++
		return true
	})
	require.Equal(t, 1, calls)
}

func TestRegistry_Filter(t *testing.T) {
	reg := format.DefaultRegistry()

	audio, err := reg.Filter("mp3", "flac")
	require.NoError(t, err)
	require.Equal(t, 2, audio.Len())
	require.NotNil(t, audio.ByID(format.FormatMP3))
	require.NotNil(t, audio.ByID(format.FormatFLAC))

	// Indexed signatures survive filtering.
	require.Greater(t, audio.Signatures(), 0)

	_, err = reg.Filter("nosuchext")
	require.Error(t, err)
}
