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
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
)

// HeaderCheck is a fast recognition predicate. It receives a buffer holding
// the first bytes of a candidate source (the caller decides how many) and
// reports whether the bytes carry the format's signature. Implementations
// must be pure: no I/O, no mutation of the buffer, deterministic for the
// same input.
type HeaderCheck func(header []byte) bool

// StreamSearch is a slow recognition predicate. It may read arbitrarily far
// into the stream looking for an embedded signature, so callers should only
// invoke it after header checks were inconclusive, and should bound it with
// their own deadline or byte limit. The stream's lifecycle stays with the
// caller; an I/O failure is returned unchanged.
type StreamSearch func(r io.ReadSeeker) (bool, error)

// Descriptor describes a single supported file format: its identity, the
// file extensions and MIME types it claims, and up to two recognition
// strategies supplied by whoever registers the format.
//
// A Descriptor has no locking of its own. Registration (AddExtension,
// AddMimeType, setters) is a setup phase; once resolution starts, the
// descriptor must only be read. Use Clone to derive an independently
// mutable variant.
type Descriptor struct {
	id        int
	name      string
	shortName string
	readable  bool

	extensions map[string]struct{}
	mimeTypes  map[string]struct{}

	headerCheck  HeaderCheck
	streamSearch StreamSearch
}

// NewDescriptor creates a descriptor with the given identity. The id is
// caller-assigned and never recomputed; uniqueness is the registry's
// business, not the descriptor's. An empty shortName falls back to name.
// The format starts out readable, with empty extension and MIME sets and
// no recognition predicates.
func NewDescriptor(id int, name, shortName string) *Descriptor {
	if shortName == "" {
		shortName = name
	}
	return &Descriptor{
		id:         id,
		name:       name,
		shortName:  shortName,
		readable:   true,
		extensions: make(map[string]struct{}),
		mimeTypes:  make(map[string]struct{}),
	}
}

// Clone returns a copy of d sharing its scalars and predicate references
// but owning independent extension and MIME sets: mutating the clone's sets
// never affects d. This is how a registry derives format variants from a
// template without entangling their extension lists.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.extensions = maps.Clone(d.extensions)
	c.mimeTypes = maps.Clone(d.mimeTypes)
	return &c
}

func (d *Descriptor) ID() int { return d.id }

func (d *Descriptor) Name() string { return d.name }

func (d *Descriptor) ShortName() string { return d.shortName }

func (d *Descriptor) Readable() bool { return d.readable }

func (d *Descriptor) SetID(id int) { d.id = id }

func (d *Descriptor) SetName(name string) { d.name = name }

func (d *Descriptor) SetReadable(v bool) { d.readable = v }

func (d *Descriptor) SetShortName(s string) { d.shortName = s }

// HeaderCheck returns the fast predicate, or nil when no fast check is
// available. Callers must treat nil as "skip the fast path", never as a
// check that always fails.
func (d *Descriptor) HeaderCheck() HeaderCheck { return d.headerCheck }

// StreamSearch returns the slow predicate, or nil when no slow check is
// available.
func (d *Descriptor) StreamSearch() StreamSearch { return d.streamSearch }

func (d *Descriptor) SetHeaderCheck(chk HeaderCheck) { d.headerCheck = chk }

func (d *Descriptor) SetStreamSearch(s StreamSearch) { d.streamSearch = s }

// AddExtension registers a file extension for this format. Extensions are
// stored lower-case and without the leading dot; adding one that is already
// present (in any case) is a no-op.
func (d *Descriptor) AddExtension(ext string) {
	d.extensions[normalizeExt(ext)] = struct{}{}
}

// AddMimeType registers a MIME type for this format, with the same
// normalization and duplicate policy as AddExtension.
func (d *Descriptor) AddMimeType(mime string) {
	d.mimeTypes[strings.ToLower(mime)] = struct{}{}
}

// IsValidExtension reports whether ext belongs to this format. The test is
// case-insensitive and tolerates a leading dot, so values coming straight
// from filepath.Ext work as-is.
func (d *Descriptor) IsValidExtension(ext string) bool {
	_, ok := d.extensions[normalizeExt(ext)]
	return ok
}

// IsValidMimeType reports whether mime belongs to this format
// (case-insensitive).
func (d *Descriptor) IsValidMimeType(mime string) bool {
	_, ok := d.mimeTypes[strings.ToLower(mime)]
	return ok
}

// Extensions returns a restartable sequence over the stored (lower-case)
// extensions. Order is unspecified. Iterating while the descriptor is
// concurrently mutated is undefined.
func (d *Descriptor) Extensions() iter.Seq[string] {
	return func(yield func(string) bool) {
		for ext := range d.extensions {
			if !yield(ext) {
				return
			}
		}
	}
}

// MimeTypes returns the stored MIME types as a sorted copy.
func (d *Descriptor) MimeTypes() []string {
	return slices.Sorted(maps.Keys(d.mimeTypes))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
