package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
)

func TestDarkBackgroundTable(t *testing.T) {
	tests := []struct {
		theme i18n.Theme
		want  map[Section]bool
	}{
		{i18n.Dark, map[Section]bool{Home: true, About: true, Projects: true, Skills: false, Contact: false}},
		{i18n.Light, map[Section]bool{Home: false, About: false, Projects: true, Skills: false, Contact: true}},
	}
	for _, tt := range tests {
		for s, want := range tt.want {
			assert.Equal(t, want, DarkBackground(tt.theme, s), "%s/%s", tt.theme, s)
		}
	}
}

func TestLocateFirstMatchWins(t *testing.T) {
	snap := Snapshot{
		ViewportHeight: 800,
		Sections: map[string]Rect{
			"about":    {Top: -200, Bottom: 400},
			"projects": {Top: 400, Bottom: 1200},
		},
	}
	// Both boxes touch y=400; page order decides.
	s, ok := Locate(snap, 400)
	require.True(t, ok)
	assert.Equal(t, About, s)
}

func TestLocateMissingSectionIsNotVisible(t *testing.T) {
	snap := Snapshot{ViewportHeight: 800, Sections: map[string]Rect{}}
	_, ok := Locate(snap, 400)
	assert.False(t, ok)
}

func TestTrackerPublishesMidpointSection(t *testing.T) {
	var published []bool
	tr := NewTracker(i18n.Dark, func(dark bool) { published = append(published, dark) })
	assert.True(t, tr.Dark())

	tr.Update(StackedPage(800, 0))
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, Home, cur)

	tr.Update(StackedPage(800, 3*800))
	cur, _ = tr.Current()
	assert.Equal(t, Skills, cur)
	assert.False(t, tr.Dark())

	assert.Equal(t, []bool{true, false}, published)
}

func TestTrackerRetainsResultWhenNothingStraddles(t *testing.T) {
	var calls int
	tr := NewTracker(i18n.Light, func(bool) { calls++ })
	tr.Update(StackedPage(800, 2*800))
	require.Equal(t, 1, calls)
	require.True(t, tr.Dark())

	// Scrolled past the end of the page: no section covers the midpoint.
	tr.Update(StackedPage(800, 10*800))
	assert.Equal(t, 1, calls)
	assert.True(t, tr.Dark())
	cur, _ := tr.Current()
	assert.Equal(t, Projects, cur)
}

func TestTrackerThemeChange(t *testing.T) {
	var last bool
	tr := NewTracker(i18n.Dark, func(dark bool) { last = dark })

	// No section located yet: theme changes keep the initial flag.
	tr.SetTheme(i18n.Light)
	assert.True(t, tr.Dark())

	tr.Update(StackedPage(800, 4*800))
	assert.True(t, last, "contact is dark under the light theme")

	tr.SetTheme(i18n.Dark)
	assert.False(t, last)
}

func TestNav(t *testing.T) {
	n := NewNav()
	assert.Equal(t, NavState{Active: Home}, n.State())

	st := n.Update(StackedPage(800, 760), 760)
	assert.Equal(t, NavState{Active: About, Scrolled: true}, st)

	st = n.Update(Snapshot{ViewportHeight: 800}, 20)
	assert.Equal(t, NavState{Active: About, Scrolled: false}, st)
}

func TestParse(t *testing.T) {
	s, ok := Parse("skills")
	assert.True(t, ok)
	assert.Equal(t, Skills, s)

	_, ok = Parse("footer")
	assert.False(t, ok)
}
