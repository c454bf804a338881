package format

import (
	"fmt"
	"plugin"
)

// PluginSymbol is the constructor every format plugin must export.
const PluginSymbol = "GetFormat"

// GetFormatFunc is the signature of the exported constructor. It returns
// the descriptor and the magic signatures to index for sniffing (which may
// be empty when the format is only recognizable by header check or stream
// search).
type GetFormatFunc func() (*Descriptor, [][]byte, error)

// PluginFormat is a descriptor loaded from a plugin, bundled with its
// registry signatures.
type PluginFormat struct {
	Descriptor *Descriptor
	Signatures [][]byte
}

// LoadPlugins opens each .so path and collects the format it provides.
// Loading stops at the first broken plugin.
func LoadPlugins(paths ...string) ([]PluginFormat, error) {
	formats := make([]PluginFormat, 0, len(paths))

	for _, path := range paths {
		p, err := plugin.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open plugin %q: %w", path, err)
		}

		sym, err := p.Lookup(PluginSymbol)
		if err != nil {
			return nil, fmt.Errorf("plugin %q does not export %s: %w", path, PluginSymbol, err)
		}

		getFormat, ok := sym.(func() (*Descriptor, [][]byte, error))
		if !ok {
			return nil, fmt.Errorf("plugin %q: %s has wrong signature", path, PluginSymbol)
		}

		d, sigs, err := getFormat()
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", path, err)
		}

		formats = append(formats, PluginFormat{
			Descriptor: d,
			Signatures: sigs,
		})
	}
	return formats, nil
}

// RegisterPlugins loads the given plugins and registers their formats.
func (r *Registry) RegisterPlugins(paths ...string) error {
	formats, err := LoadPlugins(paths...)
	if err != nil {
		return err
	}
	for _, pf := range formats {
		if err := r.Register(pf.Descriptor, pf.Signatures...); err != nil {
			return err
		}
	}
	return nil
}
