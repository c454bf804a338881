// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ostafen/tagkit/internal/env"
	"github.com/ostafen/tagkit/internal/format"
	"github.com/ostafen/tagkit/pkg/pbar"
	"github.com/ostafen/tagkit/pkg/report"
	fmtutil "github.com/ostafen/tagkit/pkg/util/format"
)

type Options struct {
	ReportFile string
	HeaderSize int
	FileExt    []string
	DisableLog bool
	LogLevel   slog.Level
	NoProgress bool
}

type target struct {
	path string
	size int64
}

// Scan classifies every regular file under dir against the registry and
// writes an XML report of the results. When opts.FileExt is non-empty, only
// formats claiming one of those extensions are considered.
func Scan(ctx context.Context, dir string, reg *format.Registry, opts Options) error {
	if len(opts.FileExt) > 0 {
		var err error
		reg, err = reg.Filter(opts.FileExt...)
		if err != nil {
			return err
		}
	}
	if reg.Len() == 0 {
		return errors.New("no formats to scan for")
	}

	targets, totalSize, err := collectTargets(dir)
	if err != nil {
		return err
	}

	session := GenSessionID()

	reportFileName := opts.ReportFile
	if reportFileName == "" {
		reportFileName = fmt.Sprintf("report_%s.xml", session)
	}

	outFile, err := os.Create(reportFileName)
	if err != nil {
		return err
	}
	defer outFile.Close()

	reportWriter := report.NewWriter(outFile)
	defer reportWriter.Close()

	err = reportWriter.WriteHeader(report.Header{
		SchemaVersion: report.SchemaVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			RootPath:  absPath(dir),
			NumFiles:  len(targets),
			TotalSize: uint64(totalSize),
		},
	})
	if err != nil {
		return err
	}

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = session + ".log"
	}

	logger, logFile, err := setupLogger(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	fmt.Println("[INFO] Starting classification...")
	fmt.Printf("[INFO] Source: \t%s\n", absPath(dir))
	fmt.Printf("[INFO] Formats: \t%s\n", strings.Join(formatNames(reg), ","))
	fmt.Printf("[INFO] Files: \t%d (%s)\n", len(targets), fmtutil.FormatBytes(totalSize))
	fmt.Printf("[INFO] Matching against %d signatures...\n", reg.Signatures())

	resolver := format.NewResolver(reg, opts.HeaderSize)

	bar := pbar.New(totalSize)
	start := time.Now()

	tallies := map[string]int{}
	unknown := 0

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, match, err := resolver.ResolvePath(ctx, t.path)
		switch {
		case errors.Is(err, format.ErrUnknownFormat):
			logger.Debug("unrecognized file", "path", t.path)
			unknown++
		case err != nil:
			logger.Error("unable to classify file", "path", t.path, "err", err)
			unknown++
		default:
			logger.Info("classified file", "path", t.path, "format", d.ShortName(), "matched_by", match.String())
			tallies[d.ShortName()]++

			var mime string
			if mimes := d.MimeTypes(); len(mimes) > 0 {
				mime = mimes[0]
			}

			err := reportWriter.WriteEntry(report.Entry{
				Path:      t.path,
				Size:      uint64(t.size),
				Format:    d.Name(),
				ShortName: d.ShortName(),
				MimeType:  mime,
				MatchedBy: match.String(),
			})
			if err != nil {
				logger.Error("unable to write report entry", "err", err)
			}
		}

		bar.Add(t.size, err == nil)
		if !opts.NoProgress {
			bar.Render(false)
		}
	}

	if !opts.NoProgress {
		bar.Done()
	}

	fmt.Printf("[INFO] Classification completed!\n")
	for _, name := range sortedKeys(tallies) {
		fmt.Printf("[INFO]   %s: \t%d\n", name, tallies[name])
	}
	fmt.Printf("[INFO] Unknown: \t%d\n", unknown)
	fmt.Printf("[INFO] Total data: \t%s\n", fmtutil.FormatBytes(totalSize))
	fmt.Printf("[INFO] Duration: \t%s\n", FormatDurationHMS(time.Since(start)))
	fmt.Printf("[INFO] Report saved to: \t%s\n", absPath(reportFileName))

	if !opts.DisableLog {
		fmt.Printf("[INFO] Detailed log: \t%s\n", absPath(logFilePath))
	}
	return nil
}

func collectTargets(dir string) ([]target, int64, error) {
	var (
		targets   []target
		totalSize int64
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		targets = append(targets, target{path: path, size: info.Size()})
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return targets, totalSize, nil
}

func formatNames(reg *format.Registry) []string {
	formats := reg.Formats()

	names := make([]string, len(formats))
	for i, d := range formats {
		names[i] = d.ShortName()
	}
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GenSessionID creates a unique name for a classification session, in the
// form "scan_YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return "scan_" + time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a duration as HH:MM:SS, falling back to
// fractional seconds below one second.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger returns a slog logger writing to logFilePath, or one that
// discards everything when the path is empty. The returned file, when not
// nil, must be closed by the caller.
func setupLogger(logFilePath string, minLevel slog.Level) (*slog.Logger, *os.File, error) {
	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: minLevel,
	})
	return slog.New(handler), file, nil
}
