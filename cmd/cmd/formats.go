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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List all supported file formats",
		Long: `The 'formats' command displays a table of all file formats known to the resolver.
Each format includes its name, short name, recognized file extensions and MIME types,
and which recognition strategies (header check, stream search) it provides.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}

	cmd.Flags().StringSlice("plugins", nil, "paths to plugin .so files or directories containing plugins")
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSHORT\tEXTENSIONS\tMIME TYPES\tCHECKS")

	for _, d := range reg.Formats() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			d.ID(),
			d.Name(),
			d.ShortName(),
			strings.Join(slices.Sorted(d.Extensions()), ","),
			strings.Join(d.MimeTypes(), ","),
			strings.Join(checkNames(d), ","),
		)
	}
	return w.Flush()
}

func checkNames(d *format.Descriptor) []string {
	var names []string
	if d.HeaderCheck() != nil {
		names = append(names, "header")
	}
	if d.StreamSearch() != nil {
		names = append(names, "search")
	}
	if len(names) == 0 {
		names = append(names, "extension-only")
	}
	return names
}

// buildRegistry returns the built-in registry extended with any plugin
// formats requested on the command line.
func buildRegistry(cmd *cobra.Command) (*format.Registry, error) {
	reg := format.DefaultRegistry()

	plugins, _ := cmd.Flags().GetStringSlice("plugins")
	pluginPaths, err := listPlugins(plugins)
	if err != nil {
		return nil, err
	}

	if err := reg.RegisterPlugins(pluginPaths...); err != nil {
		return nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	return reg, nil
}

// listPlugins expands plugin paths: files are taken as-is, directories are
// scanned recursively for .so files.
func listPlugins(plugins []string) ([]string, error) {
	var pluginPaths []string

	for _, p := range plugins {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			pluginPaths = append(pluginPaths, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && filepath.Ext(path) == ".so" {
				pluginPaths = append(pluginPaths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return pluginPaths, nil
}
