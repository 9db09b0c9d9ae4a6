package model

import (
	"slices"
	"strings"
)

// Element ids the page template provides
const (
	ElemLatestVersion  = "latestVersion"
	ElemLatestVersion2 = "latestVersion2"
	ElemDownloadButton = "apkBtn"
	ElemMirrorButton   = "apkBtnR2"
	ElemChangelogTag   = "changelogTag"
	ElemChangelogDate  = "changelogDate"
	ElemChangelogBody  = "changelogBody"
	ElemThemeButton    = "themeBtn"
	ElemMenuButton     = "menuBtn"
	ElemMainNav        = "mainNav"
	ElemBackToTop      = "backToTop"
)

// DefaultElements is the element set of the bundled page template
var DefaultElements = []string{
	ElemLatestVersion,
	ElemLatestVersion2,
	ElemDownloadButton,
	ElemMirrorButton,
	ElemChangelogTag,
	ElemChangelogDate,
	ElemChangelogBody,
	ElemThemeButton,
	ElemMenuButton,
	ElemMainNav,
	ElemBackToTop,
}

// Element holds what the UI port may change on a single element
type Element struct {
	Text    string
	Href    string
	HTML    string
	Classes *ClassSet
}

// Page is an in-memory stand-in for the document. Writes to ids that were
// not declared are dropped, the same way a missing DOM node is skipped.
type Page struct {
	Theme    Theme
	elements map[string]*Element
}

// NewPage creates a page exposing the given element ids
func NewPage(ids ...string) *Page {
	p := &Page{
		Theme:    ThemeLight,
		elements: make(map[string]*Element, len(ids)),
	}
	for _, id := range ids {
		p.elements[id] = &Element{Classes: &ClassSet{}}
	}
	return p
}

// Has reports whether id exists on the page
func (p *Page) Has(id string) bool {
	_, ok := p.elements[id]
	return ok
}

// SetText replaces the text content of id
func (p *Page) SetText(id, text string) {
	if el, ok := p.elements[id]; ok {
		el.Text = text
	}
}

// SetHref replaces the link target of id
func (p *Page) SetHref(id, href string) {
	if el, ok := p.elements[id]; ok {
		el.Href = href
	}
}

// SetHTML replaces the inner markup of id
func (p *Page) SetHTML(id, html string) {
	if el, ok := p.elements[id]; ok {
		el.HTML = html
	}
}

func (p *Page) Text(id string) string {
	if el, ok := p.elements[id]; ok {
		return el.Text
	}
	return ""
}

func (p *Page) Href(id string) string {
	if el, ok := p.elements[id]; ok {
		return el.Href
	}
	return ""
}

func (p *Page) HTML(id string) string {
	if el, ok := p.elements[id]; ok {
		return el.HTML
	}
	return ""
}

// Classes returns the class set of id, or nil when id is absent. All
// ClassSet methods accept a nil receiver.
func (p *Page) Classes(id string) *ClassSet {
	if el, ok := p.elements[id]; ok {
		return el.Classes
	}
	return nil
}

// ClassSet is an ordered set of CSS class names
type ClassSet struct {
	names []string
}

func (c *ClassSet) Add(name string) {
	if c == nil || c.Contains(name) {
		return
	}
	c.names = append(c.names, name)
}

func (c *ClassSet) Remove(name string) {
	if c == nil {
		return
	}
	c.names = slices.DeleteFunc(c.names, func(n string) bool { return n == name })
}

// Toggle flips name and reports whether it is now present
func (c *ClassSet) Toggle(name string) bool {
	if c == nil {
		return false
	}
	if c.Contains(name) {
		c.Remove(name)
		return false
	}
	c.Add(name)
	return true
}

func (c *ClassSet) Contains(name string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.names, name)
}

// String joins the classes for a class attribute
func (c *ClassSet) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.names, " ")
}
