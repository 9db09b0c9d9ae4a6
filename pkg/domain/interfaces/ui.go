package interfaces

// UI is the set of element mutations the page logic performs. Writes to
// elements that do not exist are no-ops.
type UI interface {
	SetText(id, text string)
	SetHref(id, href string)
	SetHTML(id, html string)
}

// ClassList mutates the CSS classes of a single element
type ClassList interface {
	Add(name string)
	Remove(name string)
	Toggle(name string) bool
	Contains(name string) bool
}
