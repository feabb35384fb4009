// Package markup expands the inline markup mini-language embedded in
// localized strings into plain-text pages with style spans and user tags.
//
// A tag is introduced by the two-character sequence "[#" and runs to the
// next "]"; a literal "[" immediately before it escapes the sequence, so
// "[[#" emits a plain "[#". Tags contribute zero length to the output;
// every offset recorded here indexes the page's plain-text buffer.
//
// Tag forms:
//
//	[#- name]  push the named style; opens a new style span
//	[#- ]      pop the style stack (empty body)
//	[#.]       page break
//	[#label]   open a user tag
//	[#/]       close the most recently opened user tag
package markup

import (
	"strings"

	"github.com/gogpu/textc/arena"
	"github.com/gogpu/textc/internal/logging"
	"github.com/gogpu/textc/table"
)

// Span is one style-attribute range over a page's plain text.
// Spans tile [0, len(Text)) with no gaps or overlaps.
type Span struct {
	// Style indexes the style catalog.
	Style int

	// Start and End are byte offsets into the page text, end exclusive.
	Start int
	End   int
}

// Tag is a user annotation range over a page's plain text. Offsets are
// byte offsets until remapped to glyph indices after shaping.
type Tag struct {
	Label string
	Start int
	End   int
}

// Page is one rendering surface's worth of expanded markup.
type Page struct {
	Text  string
	Spans []Span
	Tags  []Tag
}

// Expander converts raw markup strings into pages. It reuses its scratch
// buffers across calls, so one Expander serves a whole compile run.
// The zero value is not usable; styles must be supplied via New.
type Expander struct {
	styles []table.Style

	text       strings.Builder
	spans      arena.Buf[Span]
	styleStack arena.Buf[int]
	tagStack   arena.Buf[Tag]
	tags       arena.Buf[Tag]
	pages      arena.Buf[Page]
}

// New creates an Expander over the style catalog. The first style is the
// default style every page starts in.
func New(styles []table.Style) *Expander {
	return &Expander{styles: styles}
}

// Expand converts one language's raw string into its ordered pages.
// A string with no page-break tags yields exactly one page; a trailing
// page break yields a final empty page, matching the page count a runtime
// paginator expects.
//
// Unknown style names leave the current style unchanged, and user tags
// left open at a page boundary are dropped; both are warnings, not errors.
func (e *Expander) Expand(key, src string) []Page {
	e.text.Reset()
	e.spans.Reset()
	e.styleStack.Reset()
	e.tagStack.Reset()
	e.tags.Reset()
	e.pages.Reset()

	var (
		inTag     bool
		styleTag  bool
		tagStart  int
		cur       int // current style index
		spanStart int
	)

	closeSpan := func() {
		if e.text.Len() > spanStart {
			e.spans.Push(Span{Style: cur, Start: spanStart, End: e.text.Len()})
		}
		spanStart = e.text.Len()
	}

	endPage := func() {
		closeSpan()
		if n := e.tagStack.Len(); n > 0 {
			for _, t := range e.tagStack.Items() {
				logging.Logger().Warn("markup: dropping unterminated user tag at page boundary",
					"string", key, "label", t.Label)
			}
			e.tagStack.Reset()
		}
		e.pages.Push(Page{
			Text:  e.text.String(),
			Spans: e.spans.Take(),
			Tags:  e.tags.Take(),
		})
		e.text.Reset()
		spanStart = 0
	}

	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '[' && i+1 < len(src) && src[i+1] == '#' {
			if !(i > 0 && src[i-1] == '[') {
				i++ // consume '#'
				if i+1 < len(src) && src[i+1] == '-' {
					i++ // consume '-'
					styleTag = true
				}
				tagStart = i + 1
				inTag = true
			}
			// "[[#": the escaping '[' was already emitted; skipping here
			// leaves "#" to be emitted next iteration, yielding "[#".
		} else if !inTag {
			e.text.WriteByte(c)
		} else if c == ']' {
			body := src[tagStart:i]

			switch {
			case styleTag:
				closeSpan()
				name := strings.TrimSpace(body)
				if name == "" {
					if e.styleStack.Len() > 0 {
						cur = e.styleStack.Pop()
					}
				} else if idx := styleIndex(e.styles, name); idx >= 0 {
					e.styleStack.Push(cur)
					cur = idx
				} else {
					logging.Logger().Warn("markup: unknown style name, style unchanged",
						"string", key, "style", name)
				}

			case body == ".":
				endPage()

			case body == "/":
				if e.tagStack.Len() > 0 {
					t := e.tagStack.Pop()
					t.End = e.text.Len()
					e.tags.Push(t)
				}

			default:
				e.tagStack.Push(Tag{Label: body, Start: e.text.Len()})
			}

			inTag = false
			styleTag = false
		}
	}

	endPage()
	return e.pages.Take()
}

func styleIndex(styles []table.Style, name string) int {
	for i := range styles {
		if styles[i].Name == name {
			return i
		}
	}
	return -1
}
