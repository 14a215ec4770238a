package sections

import "github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"

// Tracker derives the dark-background flag from the section crossing the
// middle of the viewport. It is not safe for concurrent use; callers drive
// it from one event loop.
type Tracker struct {
	theme   i18n.Theme
	current Section
	located bool
	dark    bool
	publish func(dark bool)
}

// NewTracker returns a tracker that reports to publish. The flag starts out
// dark, matching the hero section under the default theme.
func NewTracker(theme i18n.Theme, publish func(dark bool)) *Tracker {
	if publish == nil {
		publish = func(bool) {}
	}
	return &Tracker{theme: theme, dark: true, publish: publish}
}

// Update re-runs detection against q. If no section crosses the midpoint
// the previous result stands and nothing is published.
func (t *Tracker) Update(q ViewportQuery) {
	s, ok := Locate(q, q.Height()/2)
	if !ok {
		return
	}
	t.current, t.located = s, true
	t.recompute()
}

// SetTheme recomputes the flag for the retained section under theme.
func (t *Tracker) SetTheme(theme i18n.Theme) {
	t.theme = theme
	if t.located {
		t.recompute()
	}
}

func (t *Tracker) recompute() {
	t.dark = DarkBackground(t.theme, t.current)
	t.publish(t.dark)
}

// Dark returns the last computed flag.
func (t *Tracker) Dark() bool { return t.dark }

// Current returns the last located section.
func (t *Tracker) Current() (Section, bool) { return t.current, t.located }

const (
	navProbeY       = 100
	scrolledOffsetY = 50
)

// NavState is what the navigation bar highlights.
type NavState struct {
	Active   Section `json:"active"`
	Scrolled bool    `json:"scrolled"`
}

// Nav tracks the navigation bar's active section, probed just below the
// bar rather than at the viewport midpoint.
type Nav struct {
	state NavState
}

// NewNav starts with the hero section active.
func NewNav() *Nav {
	return &Nav{state: NavState{Active: Home}}
}

// Update recomputes the state from q and the current scroll offset.
func (n *Nav) Update(q ViewportQuery, scrollY float64) NavState {
	n.state.Scrolled = scrollY > scrolledOffsetY
	if s, ok := Locate(q, navProbeY); ok {
		n.state.Active = s
	}
	return n.state
}

// State returns the last computed state.
func (n *Nav) State() NavState { return n.state }
