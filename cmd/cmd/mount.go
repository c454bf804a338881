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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/ostafen/tagkit/internal/fuse"
	"github.com/ostafen/tagkit/pkg/report"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <directory>",
		Short: "Mount a format-grouped view of a directory (Linux only)",
		Long: `The 'mount' command exposes a read-only FUSE filesystem in which files appear
under one directory per identified format (e.g. <mountpoint>/MP3/track.mp3).
By default the directory is classified on the fly; pass a report file from a
previous 'scan' run to reuse its results instead.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "directory where the filesystem will be mounted (defaults to <directory>_by_format)")
	cmd.Flags().StringP("report", "r", "", "reuse the classification results of a previous scan report")
	cmd.Flags().StringSlice("plugins", nil, "paths to plugin .so files or directories containing plugins")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	dir := args[0]

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = strings.TrimSuffix(filepath.Base(dir), "/") + "_by_format"
	}

	reportFile, _ := cmd.Flags().GetString("report")

	var (
		groups map[string][]fuse.FileEntry
		err    error
	)
	if reportFile != "" {
		groups, err = groupsFromReport(reportFile)
	} else {
		groups, err = groupsFromDir(cmd, dir)
	}
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		return fmt.Errorf("no recognized files under %q", dir)
	}
	return fuse.Mount(mountpoint, groups)
}

func groupsFromReport(reportFile string) (map[string][]fuse.FileEntry, error) {
	f, err := os.Open(reportFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := report.ReadEntries(f)
	if err != nil {
		return nil, err
	}

	groups := map[string][]fuse.FileEntry{}
	for _, e := range entries {
		name := e.ShortName
		if name == "" {
			name = e.Format
		}
		addEntry(groups, name, e.Path, e.Size)
	}
	return groups, nil
}

func groupsFromDir(cmd *cobra.Command, dir string) (map[string][]fuse.FileEntry, error) {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return nil, err
	}
	resolver := format.NewResolver(reg, 0)

	groups := map[string][]fuse.FileEntry{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		desc, _, err := resolver.ResolvePath(cmd.Context(), path)
		if errors.Is(err, format.ErrUnknownFormat) {
			return nil
		}
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		addEntry(groups, desc.ShortName(), path, uint64(info.Size()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// addEntry inserts a file under its format group, disambiguating duplicate
// base names from different directories.
func addEntry(groups map[string][]fuse.FileEntry, group, path string, size uint64) {
	name := filepath.Base(path)

	taken := func(n string) bool {
		for _, e := range groups[group] {
			if e.Name == n {
				return true
			}
		}
		return false
	}

	candidate := name
	for i := 1; taken(candidate); i++ {
		ext := filepath.Ext(name)
		candidate = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i, ext)
	}

	groups[group] = append(groups[group], fuse.FileEntry{
		Name: candidate,
		Path: path,
		Size: size,
	})
}
