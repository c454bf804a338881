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
	"fmt"
	"slices"
	"strings"

	"github.com/ostafen/tagkit/pkg/table"
)

// Registry owns the set of known format descriptors. It enforces what the
// descriptors themselves cannot: id and name uniqueness. Registration is a
// single-threaded setup phase; once resolution starts, the registry must
// only be read.
type Registry struct {
	formats []*Descriptor
	byID    map[int]*Descriptor
	byName  map[string]*Descriptor

	sigs     *table.PrefixTable[descriptors]
	sigsByID map[int][][]byte
	numSigs  int
}

type descriptors []*Descriptor

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[int]*Descriptor),
		byName:   make(map[string]*Descriptor),
		sigs:     table.New[descriptors](),
		sigsByID: make(map[int][][]byte),
	}
}

// Register adds a descriptor to the registry, optionally indexing magic
// signatures for Sniff. It fails when another descriptor already claims the
// same id or name.
func (r *Registry) Register(d *Descriptor, signatures ...[]byte) error {
	if _, ok := r.byID[d.ID()]; ok {
		return fmt.Errorf("format id %d is already registered", d.ID())
	}

	name := strings.ToLower(d.Name())
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("format %q is already registered", d.Name())
	}

	r.formats = append(r.formats, d)
	r.byID[d.ID()] = d
	r.byName[name] = d

	for _, sig := range signatures {
		ds, _ := r.sigs.Get(sig)
		r.sigs.Insert(sig, append(ds, d))
		r.numSigs++
	}
	r.sigsByID[d.ID()] = signatures
	return nil
}

// Filter returns a new registry holding only the descriptors that claim at
// least one of the given extensions, keeping their indexed signatures. It
// fails when an extension matches no registered format.
func (r *Registry) Filter(exts ...string) (*Registry, error) {
	keep := make(map[int]bool)
	for _, ext := range exts {
		ds := r.ByExtension(ext)
		if len(ds) == 0 {
			return nil, fmt.Errorf("no registered format claims extension %q", ext)
		}
		for _, d := range ds {
			keep[d.ID()] = true
		}
	}

	out := NewRegistry()
	for _, d := range r.formats {
		if !keep[d.ID()] {
			continue
		}
		if err := out.Register(d, r.sigsByID[d.ID()]...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ByID returns the descriptor registered under id, or nil.
func (r *Registry) ByID(id int) *Descriptor {
	return r.byID[id]
}

// ByName returns the descriptor whose name or short name matches
// (case-insensitively), or nil.
func (r *Registry) ByName(name string) *Descriptor {
	if d, ok := r.byName[strings.ToLower(name)]; ok {
		return d
	}
	for _, d := range r.formats {
		if strings.EqualFold(d.ShortName(), name) {
			return d
		}
	}
	return nil
}

// ByExtension returns every descriptor claiming the given file extension,
// in registration order.
func (r *Registry) ByExtension(ext string) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.formats {
		if d.IsValidExtension(ext) {
			out = append(out, d)
		}
	}
	return out
}

// ByMimeType returns every descriptor claiming the given MIME type, in
// registration order.
func (r *Registry) ByMimeType(mime string) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.formats {
		if d.IsValidMimeType(mime) {
			out = append(out, d)
		}
	}
	return out
}

// Formats returns the registered descriptors in registration order.
func (r *Registry) Formats() []*Descriptor {
	return slices.Clone(r.formats)
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int { return len(r.formats) }

// Signatures returns the number of indexed magic signatures.
func (r *Registry) Signatures() int { return r.numSigs }

// Sniff walks the signature index and invokes handle for every descriptor
// whose registered signature is a prefix of data, stopping once handle
// returns true. Descriptors registered without signatures are never visited
// here; callers fall back to their header checks.
func (r *Registry) Sniff(data []byte, handle func(d *Descriptor) bool) {
	if r.sigs.Size() == 0 {
		return
	}

	r.sigs.Walk(data, func(ds descriptors) bool {
		for _, d := range ds {
			if handle(d) {
				return true
			}
		}
		return false
	})
}
