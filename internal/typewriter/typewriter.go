// Package typewriter types and erases the hero headline strings in a loop,
// throwing a few sparks off every character it types.
package typewriter

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/sched"
)

// Config holds the typing speeds.
type Config struct {
	TypeSpeed time.Duration `koanf:"type_speed"`
	BackSpeed time.Duration `koanf:"back_speed"`
	BackDelay time.Duration `koanf:"back_delay"`
	Loop      bool          `koanf:"loop"`
}

// DefaultConfig matches the hero section.
func DefaultConfig() Config {
	return Config{
		TypeSpeed: 60 * time.Millisecond,
		BackSpeed: 40 * time.Millisecond,
		BackDelay: 2000 * time.Millisecond,
		Loop:      true,
	}
}

// ParticleLifetime is how long a spark stays on screen.
const ParticleLifetime = 2 * time.Second

const particlesPerRune = 3

// Particle is one spark, positioned relative to the caret.
type Particle struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Size float64 `json:"size"`
}

// Frame is what the headline shows.
type Frame struct {
	Index      int        `json:"index"`
	HTML       string     `json:"html"`
	Visible    int        `json:"visible"`
	Typing     bool       `json:"typing"`
	Done       bool       `json:"done"`
	Particles  []Particle `json:"particles,omitempty"`
	LifetimeMS int64      `json:"lifetime_ms,omitempty"`
}

type mode int

const (
	typing mode = iota
	paused
	erasing
)

// Typer runs the headline. Like the shuffle animator it is confined to its
// scheduler's goroutine.
type Typer struct {
	cfg     Config
	strs    []Markup
	sched   sched.Scheduler
	rng     *rand.Rand
	onFrame func(Frame)

	index   int
	pos     int
	mode    mode
	done    bool
	step    sched.Timer
	stopped bool
}

// New builds a typer over HTML fragments.
func New(s sched.Scheduler, cfg Config, strs []string, rng *rand.Rand, onFrame func(Frame)) (*Typer, error) {
	if len(strs) == 0 {
		return nil, errors.New("typewriter: no strings")
	}
	if cfg.TypeSpeed <= 0 || cfg.BackSpeed <= 0 || cfg.BackDelay < 0 {
		return nil, errors.New("typewriter: speeds must be positive")
	}
	t := &Typer{cfg: cfg, sched: s, rng: rng, onFrame: onFrame}
	for _, str := range strs {
		m := ParseMarkup(str)
		if m.Len() == 0 {
			return nil, errors.New("typewriter: string has no visible text")
		}
		t.strs = append(t.strs, m)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if t.onFrame == nil {
		t.onFrame = func(Frame) {}
	}
	return t, nil
}

// Start begins typing the first string.
func (t *Typer) Start() {
	if t.stopped {
		return
	}
	t.mode = typing
	t.emit(nil)
	t.schedule(t.cfg.TypeSpeed, t.typeRune)
}

// Stop cancels the pending step.
func (t *Typer) Stop() {
	t.stopped = true
	if t.step != nil {
		t.step.Stop()
		t.step = nil
	}
}

func (t *Typer) schedule(d time.Duration, f func()) {
	t.step = t.sched.AfterFunc(d, func() {
		if !t.stopped {
			f()
		}
	})
}

func (t *Typer) typeRune() {
	t.pos++
	cur := t.strs[t.index]
	sparks := t.sparks()
	if t.pos < cur.Len() {
		t.emit(sparks)
		t.schedule(t.cfg.TypeSpeed, t.typeRune)
		return
	}
	if !t.cfg.Loop && t.index == len(t.strs)-1 {
		t.mode = paused
		t.done = true
		t.step = nil
		t.emit(sparks)
		return
	}
	t.mode = paused
	t.emit(sparks)
	t.schedule(t.cfg.BackDelay, t.eraseRune)
}

func (t *Typer) eraseRune() {
	t.mode = erasing
	t.pos--
	if t.pos > 0 {
		t.emit(nil)
		t.schedule(t.cfg.BackSpeed, t.eraseRune)
		return
	}
	t.index = (t.index + 1) % len(t.strs)
	t.mode = typing
	t.emit(nil)
	t.schedule(t.cfg.TypeSpeed, t.typeRune)
}

func (t *Typer) sparks() []Particle {
	ps := make([]Particle, particlesPerRune)
	for i := range ps {
		ps[i] = Particle{
			X:    (t.rng.Float64() - 0.5) * 20,
			Y:    (t.rng.Float64() - 0.5) * 20,
			VX:   (t.rng.Float64() - 0.5) * 4,
			VY:   -4 + t.rng.Float64()*3,
			Size: 1 + t.rng.Float64()*2,
		}
	}
	return ps
}

func (t *Typer) emit(ps []Particle) {
	f := t.Snapshot()
	if len(ps) > 0 {
		f.Particles = ps
		f.LifetimeMS = ParticleLifetime.Milliseconds()
	}
	t.onFrame(f)
}

// Snapshot returns the current headline without particles.
func (t *Typer) Snapshot() Frame {
	return Frame{
		Index:   t.index,
		HTML:    t.strs[t.index].Prefix(t.pos),
		Visible: t.pos,
		Typing:  t.mode != paused,
		Done:    t.done,
	}
}
