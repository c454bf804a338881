package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/ostafen/tagkit/internal/scan"
	"github.com/ostafen/tagkit/pkg/report"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestScan_WritesReport(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "cover.png"), append(pngHeader, make([]byte, 64)...))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("just some text, no magic here"))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, filepath.Join(sub, "archive.zip"), append([]byte{'P', 'K', 0x03, 0x04}, make([]byte, 32)...))

	reportFile := filepath.Join(t.TempDir(), "report.xml")

	err := scan.Scan(context.Background(), dir, format.DefaultRegistry(), scan.Options{
		ReportFile: reportFile,
		DisableLog: true,
		NoProgress: true,
	})
	require.NoError(t, err)

	f, err := os.Open(reportFile)
	require.NoError(t, err)
	defer f.Close()

	entries, err := report.ReadEntries(f)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byFormat := map[string]report.Entry{}
	for _, e := range entries {
		byFormat[e.ShortName] = e
	}

	png, ok := byFormat["PNG"]
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "cover.png"), png.Path)
	require.Equal(t, "header", png.MatchedBy)
	require.Equal(t, "image/png", png.MimeType)

	_, ok = byFormat["ZIP"]
	require.True(t, ok)
}

func TestScan_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "cover.png"), append(pngHeader, make([]byte, 64)...))
	writeFile(t, filepath.Join(dir, "archive.zip"), append([]byte{'P', 'K', 0x03, 0x04}, make([]byte, 32)...))

	reportFile := filepath.Join(t.TempDir(), "report.xml")

	err := scan.Scan(context.Background(), dir, format.DefaultRegistry(), scan.Options{
		ReportFile: reportFile,
		FileExt:    []string{"png"},
		DisableLog: true,
		NoProgress: true,
	})
	require.NoError(t, err)

	f, err := os.Open(reportFile)
	require.NoError(t, err)
	defer f.Close()

	entries, err := report.ReadEntries(f)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "PNG", entries[0].ShortName)
}

func TestScan_RejectsUnclaimedExtension(t *testing.T) {
	err := scan.Scan(context.Background(), t.TempDir(), format.DefaultRegistry(), scan.Options{
		FileExt:    []string{"nosuchext"},
		DisableLog: true,
		NoProgress: true,
	})
	require.Error(t, err)
}

func TestFormatDurationHMS(t *testing.T) {
	require.Equal(t, "0.50s", scan.FormatDurationHMS(500e6))
	require.Equal(t, "00:00:01", scan.FormatDurationHMS(1e9))
	require.Equal(t, "01:02:03", scan.FormatDurationHMS(3723e9))
}
