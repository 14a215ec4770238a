package shuffle

import (
	"fmt"
	"strings"
)

// Variant is the glow hue of the glyph currently flickering. The two
// vertical columns use different hues; nothing else differs between them.
type Variant struct {
	Name string
	// RGB triples for dark and light backgrounds.
	Dark  [3]int
	Light [3]int
}

var (
	Purple = Variant{Name: "purple", Dark: [3]int{168, 85, 247}, Light: [3]int{147, 51, 234}}
	Blue   = Variant{Name: "blue", Dark: [3]int{96, 165, 250}, Light: [3]int{37, 99, 235}}
)

// ParseVariant returns the named variant, defaulting to purple.
func ParseVariant(name string) Variant {
	if strings.EqualFold(name, Blue.Name) {
		return Blue
	}
	return Purple
}

// GlyphStyle is how one glyph is drawn.
type GlyphStyle struct {
	Color      string    `json:"color"`
	Opacity    []float64 `json:"opacity"`
	Scale      []float64 `json:"scale"`
	Pulse      bool      `json:"pulse"`
	TextShadow string    `json:"text_shadow"`
	Filter     string    `json:"filter"`
}

// GlyphView pairs a glyph with its style.
type GlyphView struct {
	Char  string     `json:"char"`
	Style GlyphStyle `json:"style"`
}

// ScanLine sweeps across the flickering glyph.
type ScanLine struct {
	FromY float64 `json:"from_y"`
	ToY   float64 `json:"to_y"`
	Color string  `json:"color"`
}

// Particle is a spark thrown sideways from the flickering glyph.
type Particle struct {
	Top   float64 `json:"top"`
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
	Delay float64 `json:"delay"`
}

// View is a render-ready frame.
type View struct {
	Side      string      `json:"side"`
	Dark      bool        `json:"dark"`
	Glyphs    []GlyphView `json:"glyphs"`
	Scan      *ScanLine   `json:"scan,omitempty"`
	Particles []Particle  `json:"particles,omitempty"`
}

const (
	restOpacity = 0.25
	glyphPitch  = 85
	particles   = 4
)

// Style returns the style for a glyph given whether it is flickering and
// whether the background behind it is dark.
func Style(active, dark bool, v Variant) GlyphStyle {
	st := GlyphStyle{
		Color:   "rgba(0, 0, 0, 0.25)",
		Opacity: []float64{restOpacity},
		Scale:   []float64{1},
		Filter:  "brightness(1)",
	}
	if dark {
		st.Color = "rgba(255, 255, 255, 0.25)"
	}
	if !active {
		st.TextShadow = "none"
		return st
	}
	st.Pulse = true
	st.Scale = []float64{1, 1.15, 1}
	st.Filter = "brightness(1.5)"
	if dark {
		st.Opacity = []float64{restOpacity, 0.7, restOpacity}
		st.TextShadow = shadow(v.Dark, [][2]float64{{15, 0.7}, {30, 0.4}, {45, 0.2}})
	} else {
		st.Opacity = []float64{restOpacity, 0.65, restOpacity}
		st.TextShadow = shadow(v.Light, [][2]float64{{10, 0.6}, {20, 0.3}})
	}
	return st
}

func shadow(rgb [3]int, layers [][2]float64) string {
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = fmt.Sprintf("0 0 %gpx %s", l[0], rgba(rgb, l[1]))
	}
	return strings.Join(parts, ", ")
}

func rgba(rgb [3]int, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", rgb[0], rgb[1], rgb[2], alpha)
}

// Render turns a frame into a view for the column on side.
func Render(f Frame, side string, dark bool, v Variant) View {
	view := View{Side: side, Dark: dark, Glyphs: make([]GlyphView, len(f.Glyphs))}
	for i, g := range f.Glyphs {
		view.Glyphs[i] = GlyphView{Char: g, Style: Style(i == f.Active, dark, v)}
	}
	if !f.Animating || f.Active == NoPosition {
		return view
	}

	alpha := 0.45
	rgb := v.Light
	if dark {
		alpha, rgb = 0.5, v.Dark
	}
	y := float64(f.Active * glyphPitch)
	view.Scan = &ScanLine{FromY: y - 10, ToY: y + 95, Color: rgba(rgb, alpha)}

	dx := 25.0
	if side == "right" {
		dx = -dx
	}
	view.Particles = make([]Particle, particles)
	for i := range view.Particles {
		view.Particles[i] = Particle{
			Top:   y + 30 + float64(i*15),
			DX:    dx,
			DY:    float64(-15 + i*8),
			Delay: float64(i) * 0.05,
		}
	}
	return view
}
