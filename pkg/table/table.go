// Package table implements a small prefix table for magic-byte lookups:
// values are stored under byte-string keys, and a buffer can be walked to
// visit the value of every stored key that prefixes it.
package table

// PrefixTable stores key-value pairs keyed on byte strings and supports
// prefix-based traversal. Keys are expected to be short (file signatures
// are rarely longer than a couple dozen bytes).
type PrefixTable[T any] struct {
	// prefixes marks every proper prefix of every stored key, so a walk
	// can stop as soon as no stored key can match anymore.
	prefixes map[string]struct{}
	elems    map[string]T
}

// New returns an empty PrefixTable.
func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		prefixes: make(map[string]struct{}),
		elems:    make(map[string]T),
	}
}

// Insert stores v under key, replacing any previous value.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	for i := 1; i < len(key); i++ {
		t.prefixes[string(key[:i])] = struct{}{}
	}
	t.elems[string(key)] = v
}

// Get returns the value stored under key, if any.
func (t *PrefixTable[T]) Get(key []byte) (T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk visits, in order of increasing key length, the value of every stored
// key that is a prefix of data. Traversal stops early when onMatch returns
// true, or as soon as no stored key can extend the current prefix.
//
// With stored keys "BM", "BM6" and "GIF8", Walk([]byte("BM68...")) visits
// the values of "BM" and then "BM6"; Walk([]byte("GIF87a")) visits only the
// value of "GIF8".
func (t *PrefixTable[T]) Walk(data []byte, onMatch func(T) bool) {
	for i := 1; i <= len(data); i++ {
		prefix := string(data[:i])

		if v, ok := t.elems[prefix]; ok {
			if onMatch(v) {
				return
			}
		} else if _, ok := t.prefixes[prefix]; !ok {
			return
		}
	}
}

// Size returns the number of stored keys.
func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}
