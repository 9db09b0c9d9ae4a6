// Package markdown converts release notes into an HTML fragment.
//
// The converter is line oriented and intentionally small: headings (#, ##,
// ###), unordered and ordered lists, paragraphs, and a fixed sequence of
// inline substitutions. Inline markup is handled by non-recursive regular
// expression passes over escaped text, so malformed or adjacent markup may
// be formatted partially. That output is kept as is.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

// DefaultPlaceholder is the text shown when there are no notes
const DefaultPlaceholder = "No release notes available."

// Renderer converts markdown to HTML
type Renderer struct {
	placeholder string
}

// Option configures a Renderer
type Option func(*Renderer)

// WithPlaceholder sets the text of the paragraph emitted for empty input
func WithPlaceholder(text string) Option {
	return func(r *Renderer) {
		r.placeholder = text
	}
}

// New creates a Renderer
func New(opts ...Option) *Renderer {
	r := &Renderer{placeholder: DefaultPlaceholder}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ToHTML renders md with the default placeholder
func ToHTML(md string) string {
	return New().Render(md)
}

// Render converts md into an HTML fragment. It never fails; input that
// yields no elements produces a single placeholder paragraph.
func (r *Renderer) Render(md string) string {
	var b strings.Builder
	state := NoList

	for _, raw := range strings.Split(md, "\n") {
		line := Classify(strings.TrimSuffix(raw, "\r"))

		closeTag, openTag, next := Transition(state, line.Class)
		b.WriteString(closeTag)
		b.WriteString(openTag)
		state = next

		switch line.Class {
		case LineHeading:
			tag := headingTag(line.Level)
			b.WriteString("<" + tag + ">" + FormatInline(line.Text) + "</" + tag + ">")
		case LineUnordered, LineOrdered:
			b.WriteString("<li>" + FormatInline(line.Text) + "</li>")
		case LineParagraph:
			b.WriteString("<p>" + FormatInline(line.Text) + "</p>")
		}
	}

	closeTag, _, _ := Transition(state, LineEnd)
	b.WriteString(closeTag)

	if b.Len() == 0 {
		return `<p class="muted">` + html.EscapeString(r.placeholder) + `</p>`
	}
	return b.String()
}

func headingTag(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h2"
	default:
		return "h3"
	}
}

var (
	headingPattern   = regexp.MustCompile(`^(#{1,3})\s+(.+)`)
	unorderedPattern = regexp.MustCompile(`^\s*[-*]\s+(.+)`)
	orderedPattern   = regexp.MustCompile(`^\s*\d+\.\s+(.+)`)
)

// Line is a classified input line
type Line struct {
	Class LineClass
	Level int    // heading level, 1 to 3
	Text  string // content without the block marker
}

// Classify determines the block kind of a single line. Headings are
// checked first, then unordered items, then ordered items.
func Classify(line string) Line {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return Line{Class: LineHeading, Level: len(m[1]), Text: m[2]}
	}
	if m := unorderedPattern.FindStringSubmatch(line); m != nil {
		return Line{Class: LineUnordered, Text: m[1]}
	}
	if m := orderedPattern.FindStringSubmatch(line); m != nil {
		return Line{Class: LineOrdered, Text: m[1]}
	}
	if strings.TrimSpace(line) == "" {
		return Line{Class: LineBlank}
	}
	return Line{Class: LineParagraph, Text: line}
}
