package usecase

import "github.com/m-mizutani/releasepage/pkg/domain/interfaces"

const (
	// NavOpenClass marks the expanded mobile navigation
	NavOpenClass = "open"

	// BackToTopShowClass marks the visible back-to-top button
	BackToTopShowClass = "show"

	// BackToTopThreshold is the scroll offset in pixels above which the
	// back-to-top button is shown
	BackToTopThreshold = 300
)

// NavMenu drives the mobile navigation. A nil class list makes every
// method a no-op, matching a page without a menu button or nav.
type NavMenu struct {
	nav interfaces.ClassList
}

func NewNavMenu(nav interfaces.ClassList) *NavMenu {
	return &NavMenu{nav: nav}
}

// Toggle handles a click on the menu button
func (m *NavMenu) Toggle() {
	if m.nav == nil {
		return
	}
	m.nav.Toggle(NavOpenClass)
}

// LinkActivated handles a click on any link inside the nav
func (m *NavMenu) LinkActivated() {
	if m.nav == nil {
		return
	}
	m.nav.Remove(NavOpenClass)
}

func (m *NavMenu) IsOpen() bool {
	return m.nav != nil && m.nav.Contains(NavOpenClass)
}

// BackToTop drives the back-to-top button
type BackToTop struct {
	button interfaces.ClassList
}

func NewBackToTop(button interfaces.ClassList) *BackToTop {
	return &BackToTop{button: button}
}

// OnScroll shows the button once scrollY passes BackToTopThreshold
func (b *BackToTop) OnScroll(scrollY int) {
	if b.button == nil {
		return
	}
	if scrollY > BackToTopThreshold {
		b.button.Add(BackToTopShowClass)
	} else {
		b.button.Remove(BackToTopShowClass)
	}
}

// Click returns the vertical offset to scroll to
func (b *BackToTop) Click() int {
	return 0
}

func (b *BackToTop) IsVisible() bool {
	return b.button != nil && b.button.Contains(BackToTopShowClass)
}
