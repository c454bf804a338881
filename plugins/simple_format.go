package main

import (
	"github.com/ostafen/tagkit/internal/format"
)

var simpleSignature = []byte{0xDE, 0xAD, 0xBE, 0xEF}

// GetFormat is the constructor looked up by the plugin loader.
func GetFormat() (*format.Descriptor, [][]byte, error) {
	d := format.NewDescriptor(1000, "Simple Test Format", "SIMPLE")
	d.AddExtension("simple")
	d.AddMimeType("application/x-simple")
	d.SetHeaderCheck(format.MatchSignature(simpleSignature))

	return d, [][]byte{simpleSignature}, nil
}

// main is never invoked; it exists only so the package satisfies the
// default (exe) buildmode. Plugins are built with -buildmode=plugin,
// which ignores main.
func main() {}
