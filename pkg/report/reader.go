package report

import (
	"encoding/xml"
	"errors"
	"io"
)

// ReadEntries decodes every <file> element of a classification report,
// skipping the preamble.
func ReadEntries(r io.Reader) ([]Entry, error) {
	dec := xml.NewDecoder(r)

	var entries []Entry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "file" {
			continue
		}

		var e Entry
		if err := dec.DecodeElement(&e, &start); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}
