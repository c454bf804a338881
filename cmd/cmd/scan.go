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
package cmd

import (
	"log/slog"

	"github.com/ostafen/tagkit/internal/scan"
	"github.com/spf13/cobra"
)

func DefineScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scan <directory>",
		Short:        "Classify every file under a directory and write a report",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunScan,
	}

	cmd.Flags().StringP("output", "o", "", "path of the XML report file")
	cmd.Flags().Int("header-size", 0, "number of leading bytes handed to header checks")
	cmd.Flags().StringSlice("ext", nil, "restrict classification to formats claiming these extensions")
	cmd.Flags().Bool("no-log", false, "disable the per-session log file")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().StringSlice("plugins", nil, "paths to plugin .so files or directories containing plugins")

	return cmd
}

func RunScan(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	opts, err := parseScanOptions(cmd)
	if err != nil {
		return err
	}
	return scan.Scan(cmd.Context(), args[0], reg, opts)
}

func parseScanOptions(cmd *cobra.Command) (scan.Options, error) {
	outputFile, _ := cmd.Flags().GetString("output")
	headerSize, _ := cmd.Flags().GetInt("header-size")
	fileExt, _ := cmd.Flags().GetStringSlice("ext")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return scan.Options{
		ReportFile: outputFile,
		HeaderSize: headerSize,
		FileExt:    fileExt,
		DisableLog: disableLog,
		NoProgress: noProgress,
		LogLevel:   slogLevel(logLevel),
	}, nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
