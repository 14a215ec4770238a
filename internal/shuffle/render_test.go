package shuffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleResting(t *testing.T) {
	st := Style(false, true, Purple)
	assert.Equal(t, "rgba(255, 255, 255, 0.25)", st.Color)
	assert.Equal(t, []float64{0.25}, st.Opacity)
	assert.False(t, st.Pulse)
	assert.Equal(t, "none", st.TextShadow)

	st = Style(false, false, Blue)
	assert.Equal(t, "rgba(0, 0, 0, 0.25)", st.Color)
}

func TestStyleActive(t *testing.T) {
	dark := Style(true, true, Purple)
	assert.True(t, dark.Pulse)
	assert.Equal(t, []float64{0.25, 0.7, 0.25}, dark.Opacity)
	assert.Equal(t, []float64{1, 1.15, 1}, dark.Scale)
	assert.Equal(t,
		"0 0 15px rgba(168, 85, 247, 0.7), 0 0 30px rgba(168, 85, 247, 0.4), 0 0 45px rgba(168, 85, 247, 0.2)",
		dark.TextShadow)

	light := Style(true, false, Purple)
	assert.Equal(t, []float64{0.25, 0.65, 0.25}, light.Opacity)
	assert.Equal(t, "0 0 10px rgba(147, 51, 234, 0.6), 0 0 20px rgba(147, 51, 234, 0.3)", light.TextShadow)

	// Variants only change the hue.
	blue := Style(true, true, Blue)
	assert.NotEqual(t, dark.TextShadow, blue.TextShadow)
	blue.TextShadow = dark.TextShadow
	assert.Equal(t, dark, blue)
}

func TestRender(t *testing.T) {
	f := Frame{Glyphs: []string{"革", "x"}, Animating: true, Active: 1, Phase: Transitioning}

	left := Render(f, "left", true, Purple)
	require.Len(t, left.Glyphs, 2)
	assert.False(t, left.Glyphs[0].Style.Pulse)
	assert.True(t, left.Glyphs[1].Style.Pulse)
	require.NotNil(t, left.Scan)
	assert.Equal(t, 75.0, left.Scan.FromY)
	assert.Equal(t, 180.0, left.Scan.ToY)
	require.Len(t, left.Particles, 4)
	assert.Equal(t, 25.0, left.Particles[0].DX)

	right := Render(f, "right", true, Blue)
	assert.Equal(t, -25.0, right.Particles[0].DX)

	idle := Render(Frame{Glyphs: []string{"革"}, Active: NoPosition}, "left", false, Purple)
	assert.Nil(t, idle.Scan)
	assert.Empty(t, idle.Particles)
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, Blue, ParseVariant("BLUE"))
	assert.Equal(t, Purple, ParseVariant("teal"))
}
