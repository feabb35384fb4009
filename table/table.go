// Package table builds the compiler's content model from the two tabular
// inputs: a styles table and a strings table.
//
// Both tables are delimiter-separated text with quoted-field support. The
// first row of each table is a header: the styles header is ignored, the
// strings header is mandatory and defines the language set. Language order
// in the header defines the language index used everywhere downstream.
package table

// Style is one named text style. The first style declared in the styles
// table is the document default.
type Style struct {
	// Name is the identifier referenced by markup style tags.
	Name string

	// Face is the font face key (font file base name, no extension).
	Face string

	// Size is the point size.
	Size uint32

	// LineHeight is the line height multiplier.
	LineHeight float64
}

// StringEntry is one localized string row.
type StringEntry struct {
	// Key identifies the string in the output document.
	Key string

	// Width and Height are the target surface dimensions in pixels.
	// Width == 0 marks the entry as referenced-only: it is parsed and
	// contributes to the source hash, but is never shaped or serialized.
	Width  uint32
	Height uint32

	// Texts holds one raw markup string per language, in header order.
	Texts []string
}

// InScope reports whether the entry is part of the shaped/serialized output.
func (e *StringEntry) InScope() bool {
	return e.Width > 0
}

// Table is the in-memory catalog built from both input tables.
type Table struct {
	Styles    []Style
	Strings   []StringEntry
	Languages []string
}

// DefaultStyle returns the first declared style.
func (t *Table) DefaultStyle() *Style {
	return &t.Styles[0]
}

// StyleIndex returns the index of the named style, or -1 if absent.
func (t *Table) StyleIndex(name string) int {
	for i := range t.Styles {
		if t.Styles[i].Name == name {
			return i
		}
	}
	return -1
}

// LanguageIndex returns the column index of the language key, matched
// case-sensitively against the strings header, or -1 if absent.
func (t *Table) LanguageIndex(key string) int {
	for i, l := range t.Languages {
		if l == key {
			return i
		}
	}
	return -1
}

// Parse builds the catalog from the raw bytes of both tables.
func Parse(stylesSrc, stringsSrc []byte) (*Table, error) {
	styles, err := ParseStyles(stylesSrc)
	if err != nil {
		return nil, err
	}
	strings, languages, err := ParseStrings(stringsSrc)
	if err != nil {
		return nil, err
	}
	return &Table{Styles: styles, Strings: strings, Languages: languages}, nil
}
