package sections

// Snapshot is the page geometry a browser reports on scroll.
type Snapshot struct {
	ViewportHeight float64         `json:"height"`
	ScrollY        float64         `json:"scroll_y"`
	Sections       map[string]Rect `json:"sections"`
}

// Bounds implements ViewportQuery. Unknown or unreported sections are not
// visible.
func (s Snapshot) Bounds(sec Section) (Rect, bool) {
	r, ok := s.Sections[string(sec)]
	return r, ok
}

// Height implements ViewportQuery.
func (s Snapshot) Height() float64 { return s.ViewportHeight }

// StackedPage lays the sections out one after another, each one viewport
// tall, scrolled down by scrollY. The preview command uses it in place of a
// real browser.
func StackedPage(height, scrollY float64) Snapshot {
	snap := Snapshot{
		ViewportHeight: height,
		ScrollY:        scrollY,
		Sections:       make(map[string]Rect, len(All)),
	}
	for i, s := range All {
		top := float64(i)*height - scrollY
		snap.Sections[string(s)] = Rect{Top: top, Bottom: top + height}
	}
	return snap
}
