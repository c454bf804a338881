package format_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/stretchr/testify/require"
)

func TestResolver_HeaderMatch(t *testing.T) {
	reg := format.NewRegistry()

	bmp := format.NewDescriptor(1, "Bitmap", "BMP")
	bmp.SetHeaderCheck(format.MatchSignature([]byte("BM")))
	require.NoError(t, reg.Register(bmp, []byte("BM")))

	resolver := format.NewResolver(reg, 0)

	d, match, err := resolver.Resolve(context.Background(), bytes.NewReader([]byte("BM......")))
	require.NoError(t, err)
	require.Equal(t, bmp, d)
	require.Equal(t, format.MatchHeader, match)
}

func TestResolver_HeaderCheckWithoutSignature(t *testing.T) {
	reg := format.NewRegistry()

	// No indexed signature: the resolver must fall back to the
	// descriptor's own header check.
	wav := format.NewDescriptor(1, "Waveform Audio", "WAV")
	wav.SetHeaderCheck(func(header []byte) bool {
		return bytes.HasPrefix(header, []byte("RIFF")) &&
			len(header) >= 12 && bytes.Equal(header[8:12], []byte("WAVE"))
	})
	require.NoError(t, reg.Register(wav))

	resolver := format.NewResolver(reg, 0)

	data := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	data = append(data, []byte("WAVEfmt ")...)

	d, match, err := resolver.Resolve(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, wav, d)
	require.Equal(t, format.MatchHeader, match)
}

func TestResolver_StreamSearchMatch(t *testing.T) {
	reg := format.NewRegistry()

	flac := format.NewDescriptor(1, "Free Lossless Audio Codec", "FLAC")
	flac.SetHeaderCheck(format.MatchSignature([]byte("fLaC")))
	flac.SetStreamSearch(format.SearchSignature([]byte("fLaC"), 1<<20))
	require.NoError(t, reg.Register(flac, []byte("fLaC")))

	resolver := format.NewResolver(reg, 0)

	// Marker pushed past the header window by a fake leading tag.
	data := append(bytes.Repeat([]byte{0x55}, 4096), []byte("fLaC....")...)

	d, match, err := resolver.Resolve(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, flac, d)
	require.Equal(t, format.MatchSearch, match)
}

func TestResolver_UnknownFormat(t *testing.T) {
	reg := format.NewRegistry()

	bmp := format.NewDescriptor(1, "Bitmap", "BMP")
	bmp.SetHeaderCheck(format.MatchSignature([]byte("BM")))
	require.NoError(t, reg.Register(bmp, []byte("BM")))

	resolver := format.NewResolver(reg, 0)

	_, match, err := resolver.Resolve(context.Background(), bytes.NewReader([]byte("not a bitmap")))
	require.ErrorIs(t, err, format.ErrUnknownFormat)
	require.Equal(t, format.MatchNone, match)
}

func TestResolver_SkipsNonReadableFormats(t *testing.T) {
	reg := format.NewRegistry()

	bmp := format.NewDescriptor(1, "Bitmap", "BMP")
	bmp.SetHeaderCheck(format.MatchSignature([]byte("BM")))
	bmp.SetReadable(false)
	require.NoError(t, reg.Register(bmp, []byte("BM")))

	resolver := format.NewResolver(reg, 0)

	_, _, err := resolver.Resolve(context.Background(), bytes.NewReader([]byte("BM......")))
	require.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestResolver_PropagatesPredicateErrors(t *testing.T) {
	errProbe := errors.New("probe failed")

	reg := format.NewRegistry()

	d := format.NewDescriptor(1, "Broken", "")
	d.SetStreamSearch(func(r io.ReadSeeker) (bool, error) {
		return false, errProbe
	})
	require.NoError(t, reg.Register(d))

	resolver := format.NewResolver(reg, 0)

	_, _, err := resolver.Resolve(context.Background(), bytes.NewReader([]byte("....")))
	require.ErrorIs(t, err, errProbe)
	require.NotErrorIs(t, err, format.ErrUnknownFormat)
}

func TestResolver_HonorsContextBetweenProbes(t *testing.T) {
	reg := format.NewRegistry()

	d := format.NewDescriptor(1, "Slow", "")
	d.SetStreamSearch(func(r io.ReadSeeker) (bool, error) {
		t.Fatal("stream search must not run after cancellation")
		return false, nil
	})
	require.NoError(t, reg.Register(d))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := format.NewResolver(reg, 0)

	_, _, err := resolver.Resolve(ctx, bytes.NewReader([]byte("....")))
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolver_ResolvePathFallsBackToExtension(t *testing.T) {
	reg := format.NewRegistry()

	// Extension-only format: no predicates at all.
	cue := format.NewDescriptor(1, "Cue Sheet", "CUE")
	cue.AddExtension("cue")
	require.NoError(t, reg.Register(cue))

	dir := t.TempDir()
	path := filepath.Join(dir, "album.cue")
	require.NoError(t, os.WriteFile(path, []byte("FILE \"a.flac\" WAVE"), 0644))

	resolver := format.NewResolver(reg, 0)

	d, match, err := resolver.ResolvePath(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, cue, d)
	require.Equal(t, format.MatchExtension, match)
}

func TestResolver_ResolvePathPrefersContentOverExtension(t *testing.T) {
	reg := format.DefaultRegistry()

	dir := t.TempDir()

	// A PNG mislabeled as .mp3 must still be recognized as PNG.
	path := filepath.Join(dir, "song.mp3")
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0}, 64)...)
	require.NoError(t, os.WriteFile(path, data, 0644))

	resolver := format.NewResolver(reg, 0)

	d, match, err := resolver.ResolvePath(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, format.FormatPNG, d.ID())
	require.Equal(t, format.MatchHeader, match)
}
