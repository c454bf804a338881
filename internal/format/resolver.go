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
package format

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/ostafen/tagkit/internal/fs"
)

// ErrUnknownFormat is returned when no registered descriptor recognizes the
// input.
var ErrUnknownFormat = errors.New("unknown format")

// DefaultHeaderSize is how many leading bytes the resolver hands to header
// checks when no size is configured. Every built-in signature fits well
// within it.
const DefaultHeaderSize = 512

// Match reports which recognition strategy classified an input.
type Match int

const (
	MatchNone Match = iota
	MatchHeader
	MatchSearch
	MatchExtension
)

func (m Match) String() string {
	switch m {
	case MatchHeader:
		return "header"
	case MatchSearch:
		return "search"
	case MatchExtension:
		return "extension"
	default:
		return "none"
	}
}

// Resolver classifies unknown byte sources against a registry. It tries the
// cheap strategies first: the signature index, then every readable
// descriptor's header check over a small prefix, and only then the stream
// searches, which may read arbitrarily far. Descriptors with neither
// predicate can still be matched by extension through ResolvePath.
type Resolver struct {
	reg        *Registry
	headerSize int
}

// NewResolver returns a resolver over reg reading headerSize leading bytes
// for the fast path. A headerSize of 0 means DefaultHeaderSize.
func NewResolver(reg *Registry, headerSize int) *Resolver {
	if headerSize <= 0 {
		headerSize = DefaultHeaderSize
	}
	return &Resolver{
		reg:        reg,
		headerSize: headerSize,
	}
}

// Resolve classifies the stream. Predicate failures are not treated as
// non-matches: the first error returned by a stream search aborts
// resolution and is returned unchanged. The context is checked between
// slow probes; it cannot interrupt a single predicate mid-read.
func (rv *Resolver) Resolve(ctx context.Context, r io.ReadSeeker) (*Descriptor, Match, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, MatchNone, err
	}

	header := make([]byte, rv.headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, MatchNone, err
	}
	header = header[:n]

	if d := rv.resolveHeader(header); d != nil {
		return d, MatchHeader, nil
	}

	d, err := rv.resolveSearch(ctx, r)
	if err != nil {
		return nil, MatchNone, err
	}
	if d != nil {
		return d, MatchSearch, nil
	}
	return nil, MatchNone, ErrUnknownFormat
}

func (rv *Resolver) resolveHeader(header []byte) *Descriptor {
	var found *Descriptor
	rv.reg.Sniff(header, func(d *Descriptor) bool {
		if !d.Readable() {
			return false
		}
		// A signature hit still consults the descriptor's own check
		// when it has one, so formats sharing a magic prefix can
		// discriminate further.
		if chk := d.HeaderCheck(); chk != nil && !chk(header) {
			return false
		}
		found = d
		return true
	})
	if found != nil {
		return found
	}

	for _, d := range rv.reg.Formats() {
		if !d.Readable() {
			continue
		}
		if chk := d.HeaderCheck(); chk != nil && chk(header) {
			return d
		}
	}
	return nil
}

func (rv *Resolver) resolveSearch(ctx context.Context, r io.ReadSeeker) (*Descriptor, error) {
	for _, d := range rv.reg.Formats() {
		search := d.StreamSearch()
		if search == nil || !d.Readable() {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}

		found, err := search(r)
		if err != nil {
			return nil, err
		}
		if found {
			return d, nil
		}
	}
	return nil, nil
}

// ResolvePath opens and classifies the file at path. Content wins over
// name: the extension is only consulted once both recognition passes came
// up empty, so a descriptor with no predicates at all can still claim its
// files.
func (rv *Resolver) ResolvePath(ctx context.Context, path string) (*Descriptor, Match, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, MatchNone, err
	}
	defer f.Close()

	d, match, err := rv.Resolve(ctx, f)
	if err == nil {
		return d, match, nil
	}
	if !errors.Is(err, ErrUnknownFormat) {
		return nil, MatchNone, err
	}

	if ext := filepath.Ext(path); ext != "" {
		for _, d := range rv.reg.ByExtension(ext) {
			if d.Readable() {
				return d, MatchExtension, nil
			}
		}
	}
	return nil, MatchNone, ErrUnknownFormat
}
