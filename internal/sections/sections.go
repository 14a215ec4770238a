// Package sections works out which part of the single page is on screen
// and what that means for colouring the fixed decorative text.
package sections

import "github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"

// Section names one region of the page.
type Section string

const (
	Home     Section = "home"
	About    Section = "about"
	Projects Section = "projects"
	Skills   Section = "skills"
	Contact  Section = "contact"
)

// All lists the sections in page order. Detection walks this order and the
// first match wins.
var All = []Section{Home, About, Projects, Skills, Contact}

// Parse returns the section with the given id.
func Parse(id string) (Section, bool) {
	for _, s := range All {
		if string(s) == id {
			return s, true
		}
	}
	return "", false
}

// Rect is a vertical bounding box relative to the top of the viewport.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Straddles reports whether the horizontal line at y crosses r.
func (r Rect) Straddles(y float64) bool {
	return r.Top <= y && r.Bottom >= y
}

// ViewportQuery answers layout questions about the rendered page.
type ViewportQuery interface {
	// Bounds returns the box of a section; ok is false when the section is
	// not in the document.
	Bounds(s Section) (r Rect, ok bool)
	// Height is the viewport height.
	Height() float64
}

// Locate returns the first section in page order whose box crosses probeY.
func Locate(q ViewportQuery, probeY float64) (Section, bool) {
	for _, s := range All {
		r, ok := q.Bounds(s)
		if !ok {
			continue
		}
		if r.Straddles(probeY) {
			return s, true
		}
	}
	return "", false
}

var (
	darkOnDarkTheme   = map[Section]bool{Home: true, About: true, Projects: true}
	lightOnLightTheme = map[Section]bool{Home: true, About: true, Skills: true}
)

// DarkBackground reports whether section s has a dark background under
// theme.
func DarkBackground(theme i18n.Theme, s Section) bool {
	if theme == i18n.Dark {
		return darkOnDarkTheme[s]
	}
	return !lightOnLightTheme[s]
}
