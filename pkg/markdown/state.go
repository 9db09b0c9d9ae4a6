package markdown

// LineClass is the block kind of an input line
type LineClass int

const (
	LineBlank LineClass = iota
	LineHeading
	LineUnordered
	LineOrdered
	LineParagraph
	// LineEnd is the pseudo line fed after the last input line
	LineEnd
)

// ListState is the only state of the converter: either no list is open, or
// a list of one kind is.
type ListState int

const (
	NoList ListState = iota
	InUnorderedList
	InOrderedList
)

func (s ListState) closeTag() string {
	switch s {
	case InUnorderedList:
		return "</ul>"
	case InOrderedList:
		return "</ol>"
	default:
		return ""
	}
}

func (s ListState) openTag() string {
	switch s {
	case InUnorderedList:
		return "<ul>"
	case InOrderedList:
		return "<ol>"
	default:
		return ""
	}
}

// Transition returns the markup emitted before a line of class c is
// written while in state s, and the state after it.
//
//	NoList      + item(k)            -> open k, InList(k)
//	InList(k)   + item(k)            -> nothing, InList(k)
//	InList(k)   + item(j), j != k    -> close k, open j, InList(j)
//	InList(k)   + heading/paragraph  -> close k, NoList
//	InList(k)   + end                -> close k, NoList
//	any         + blank              -> nothing, unchanged
func Transition(s ListState, c LineClass) (closeTag, openTag string, next ListState) {
	switch c {
	case LineBlank:
		return "", "", s
	case LineUnordered, LineOrdered:
		want := InUnorderedList
		if c == LineOrdered {
			want = InOrderedList
		}
		if s == want {
			return "", "", s
		}
		return s.closeTag(), want.openTag(), want
	default:
		return s.closeTag(), "", NoList
	}
}
