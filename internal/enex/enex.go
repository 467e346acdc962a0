// Package enex reads Evernote .enex export files. Exports can be hundreds of
// megabytes, so parsing streams note by note instead of loading the document.
package enex

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Summary aggregates an export.
type Summary struct {
	Total  int
	Empty  int
	Titles []string
}

// ReadTitles streams notes from an .enex document and returns their titles in
// document order, whitespace-trimmed. Notes without a <title> element count
// as empty-titled, not as errors.
func ReadTitles(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	// Evernote exports declare non-UTF-8 charsets on occasion; pass bytes
	// through rather than failing on the declaration.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	// Non-nil even for an empty export, so JSON output renders [].
	titles := []string{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse enex: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "note" {
			continue
		}

		var note struct {
			Title string `xml:"title"`
		}
		if err := dec.DecodeElement(&note, &start); err != nil {
			return nil, fmt.Errorf("parse enex note: %w", err)
		}
		titles = append(titles, strings.TrimSpace(note.Title))
	}
	return titles, nil
}

// ReadFile parses the export at path and summarizes it.
func ReadFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = f.Close() }()

	titles, err := ReadTitles(f)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(titles), nil
}

// Summarize counts titles and empty titles.
func Summarize(titles []string) Summary {
	s := Summary{Total: len(titles), Titles: titles}
	for _, t := range titles {
		if t == "" {
			s.Empty++
		}
	}
	return s
}
