package notion

import "strings"

// Object is a decoded Notion API object of any type (page, data_source,
// database, ...). The API returns differently shaped JSON depending on the
// object type and on which endpoint produced it, so access goes through
// helpers with missing-is-empty semantics: absent or oddly typed fields read
// as zero values, never as errors.
type Object map[string]any

func (o Object) Type() string {
	return o.Str("object")
}

func (o Object) ID() string {
	return o.Str("id")
}

// Str returns the string at key, or "" if the key is absent or not a string.
func (o Object) Str(key string) string {
	s, _ := o[key].(string)
	return s
}

// RichText concatenates the plain_text fragments of the rich-text array at
// key, in order, and trims the result. A missing or malformed array reads as
// the empty string.
func (o Object) RichText(key string) string {
	arr, _ := o[key].([]any)
	return JoinRichText(arr)
}

// Properties returns the property map of a page object, keyed by property
// name. Pages returned by search sometimes omit it entirely.
func (o Object) Properties() map[string]any {
	props, _ := o["properties"].(map[string]any)
	return props
}

// JoinRichText renders a rich-text run list to its plain-text form: the
// plain_text of each fragment, concatenated in order, whitespace-trimmed.
func JoinRichText(runs []any) string {
	var b strings.Builder
	for _, run := range runs {
		m, ok := run.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m["plain_text"].(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String())
}

// Title derives a title for any object the search or retrieve endpoints can
// return. Fallback order, first non-empty wins:
//
//  1. top-level rich-text "title" (search results for pages and data sources)
//  2. plain "name" string (data sources and databases)
//  3. the title-typed property of a page's property map
//
// All branches trim whitespace. An object with no usable title yields "" —
// never an error.
func Title(o Object) string {
	if t := o.RichText("title"); t != "" {
		return t
	}

	switch o.Type() {
	case "data_source", "database":
		if name := strings.TrimSpace(o.Str("name")); name != "" {
			return name
		}
	}

	return titleProperty(o)
}

// DisplayTitle is Title with a final fallback to the object's identifier, so
// unknown or bare objects still render as something addressable. A fully bare
// object yields "".
func DisplayTitle(o Object) string {
	if t := Title(o); t != "" {
		return t
	}
	return o.ID()
}

// titleProperty scans a page's property map for the property whose declared
// type is "title" and renders its rich text. The title property is not
// guaranteed to be named "Name", so it is found by type, not by key.
func titleProperty(o Object) string {
	for _, v := range o.Properties() {
		prop, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if prop["type"] != "title" {
			continue
		}
		runs, _ := prop["title"].([]any)
		return JoinRichText(runs)
	}
	return ""
}

// TitleEquals reports whether the object's title matches want exactly: both
// sides whitespace-trimmed, case-sensitive, no other normalization. The ID
// fallback is deliberately excluded so identifiers never match title queries.
func TitleEquals(o Object, want string) bool {
	t := Title(o)
	return t != "" && t == strings.TrimSpace(want)
}
