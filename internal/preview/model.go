package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/config"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/sections"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/shuffle"
)

const scrollStep = 100

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	panelStyle  = lipgloss.NewStyle().Padding(1, 4)
	columnStyle = lipgloss.NewStyle().Padding(1, 2)
	activeStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Controller receives the inputs the model forwards to the page.
type Controller interface {
	Scroll(y float64)
	SetTheme(theme i18n.Theme)
}

// Model is the bubbletea model of the preview.
type Model struct {
	ctl      Controller
	scrollY  float64
	theme    i18n.Theme
	dark     bool
	nav      sections.NavState
	frames   map[string]shuffle.Frame
	variants map[string]shuffle.Variant
}

// NewModel returns a model at the top of the page.
func NewModel(ctl Controller, cfg *config.Config) Model {
	return Model{
		ctl:   ctl,
		theme: i18n.ParseTheme(cfg.Site.DefaultTheme),
		dark:  true,
		nav:   sections.NavState{Active: sections.Home},
		frames: map[string]shuffle.Frame{
			"left":  {Active: shuffle.NoPosition},
			"right": {Active: shuffle.NoPosition},
		},
		variants: map[string]shuffle.Variant{
			"left":  shuffle.ParseVariant(cfg.Site.LeftVariant),
			"right": shuffle.ParseVariant(cfg.Site.RightVariant),
		},
	}
}

func (m Model) Init() tea.Cmd { return nil }

func maxScroll() float64 {
	return float64(len(sections.All)-1) * pageHeight
}

// Update handles keys and the frames the driver sends.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "down", "j":
			m.scrollY = min(m.scrollY+scrollStep, maxScroll())
			m.ctl.Scroll(m.scrollY)
		case "up", "k":
			m.scrollY = max(m.scrollY-scrollStep, 0)
			m.ctl.Scroll(m.scrollY)
		case "t":
			if m.theme == i18n.Dark {
				m.theme = i18n.Light
			} else {
				m.theme = i18n.Dark
			}
			m.ctl.SetTheme(m.theme)
		}
	case columnMsg:
		frames := make(map[string]shuffle.Frame, len(m.frames))
		for k, v := range m.frames {
			frames[k] = v
		}
		frames[msg.side] = msg.frame
		m.frames = frames
	case displayMsg:
		m.dark = bool(msg)
	case navMsg:
		m.nav = sections.NavState(msg)
	}
	return m, nil
}

func hexColor(rgb [3]int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]))
}

func (m Model) column(side string) string {
	v := m.variants[side]
	glow := v.Light
	rest := lipgloss.Color("250")
	if m.dark {
		glow = v.Dark
		rest = lipgloss.Color("240")
	}

	view := shuffle.Render(m.frames[side], side, m.dark, v)
	lines := make([]string, len(view.Glyphs))
	for i, g := range view.Glyphs {
		st := lipgloss.NewStyle().Foreground(rest)
		if g.Style.Pulse {
			st = activeStyle.Foreground(hexColor(glow))
		}
		lines[i] = st.Render(g.Char)
	}
	return columnStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) panel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Section tracker"))
	b.WriteString("\n")
	for _, s := range sections.All {
		marker := "  "
		if s == m.nav.Active {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, s)
	}
	fmt.Fprintf(&b, "\nscroll   %.0fpx", m.scrollY)
	fmt.Fprintf(&b, "\ntheme    %s", m.theme)
	fmt.Fprintf(&b, "\ndark bg  %t", m.dark)
	fmt.Fprintf(&b, "\nscrolled %t", m.nav.Scrolled)
	b.WriteString(helpStyle.Render("\nj/k scroll • t theme • q quit"))
	return panelStyle.Render(b.String())
}

// View draws both columns around the tracker panel on the current
// background.
func (m Model) View() string {
	bg := lipgloss.NewStyle().Background(lipgloss.Color("#ffffff")).Foreground(lipgloss.Color("#000000"))
	if m.dark {
		bg = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#ffffff"))
	}
	return bg.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.column("left"), m.panel(), m.column("right")))
}
