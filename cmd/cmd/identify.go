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
	"os"
	"strings"

	"github.com/ostafen/tagkit/internal/format"
	"github.com/ostafen/tagkit/internal/logger"
	"github.com/spf13/cobra"
)

func DefineIdentifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <file>...",
		Short: "Identify the format of one or more files",
		Long: `The 'identify' command classifies each given file against the known formats.
Recognition tries the cheap strategies first (magic signatures over a small header),
falling back to stream searches that may read further into the file. The file
extension is only consulted when content-based recognition is inconclusive.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunIdentify,
	}

	cmd.Flags().Int("header-size", 0, "number of leading bytes handed to header checks")
	cmd.Flags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().StringSlice("plugins", nil, "paths to plugin .so files or directories containing plugins")
	return cmd
}

func RunIdentify(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	headerSize, _ := cmd.Flags().GetInt("header-size")
	logLevel, _ := cmd.Flags().GetString("log-level")

	log := logger.New(os.Stderr, logger.ParseLevel(logLevel))
	resolver := format.NewResolver(reg, headerSize)

	unknown := 0
	for _, path := range args {
		d, match, err := resolver.ResolvePath(cmd.Context(), path)
		switch {
		case errors.Is(err, format.ErrUnknownFormat):
			fmt.Printf("%s: unknown\n", path)
			unknown++
		case err != nil:
			log.Errorf("%s: %v", path, err)
			unknown++
		default:
			fmt.Printf("%s: %s (%s), matched by %s", path, d.Name(), d.ShortName(), match)
			if mimes := d.MimeTypes(); len(mimes) > 0 {
				fmt.Printf(" [%s]", strings.Join(mimes, ", "))
			}
			fmt.Println()

			log.Debugf("%s: format id %d, readable=%v", path, d.ID(), d.Readable())
		}
	}

	if unknown > 0 {
		return fmt.Errorf("%d of %d files could not be identified", unknown, len(args))
	}
	return nil
}
