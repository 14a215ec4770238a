// Package shuffle implements the vertical shuffle-text effect: every few
// seconds a new word is picked and each glyph flickers through random
// glyphs before settling, one position at a time.
package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/sched"
)

// Phase is the animator's state machine position.
type Phase int

const (
	Idle Phase = iota
	Selecting
	Transitioning
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Transitioning:
		return "transitioning"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText lets frames carry the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// NoPosition marks that no glyph is mid-transition.
const NoPosition = -1

// Config holds the effect timings.
type Config struct {
	InitialDelay  time.Duration `koanf:"initial_delay"`
	MinPeriod     time.Duration `koanf:"min_period"`
	MaxPeriod     time.Duration `koanf:"max_period"`
	StartDelay    time.Duration `koanf:"start_delay"`
	GlyphInterval time.Duration `koanf:"glyph_interval"`
	SettleDelay   time.Duration `koanf:"settle_delay"`
	MinIterations int           `koanf:"min_iterations"`
	MaxIterations int           `koanf:"max_iterations"`
}

// DefaultConfig returns the timings the site ships with.
func DefaultConfig() Config {
	return Config{
		InitialDelay:  500 * time.Millisecond,
		MinPeriod:     2000 * time.Millisecond,
		MaxPeriod:     4000 * time.Millisecond,
		StartDelay:    50 * time.Millisecond,
		GlyphInterval: 15 * time.Millisecond,
		SettleDelay:   30 * time.Millisecond,
		MinIterations: 3,
		MaxIterations: 6,
	}
}

// Validate checks the timings are usable.
func (c Config) Validate() error {
	switch {
	case c.MinPeriod <= 0 || c.MaxPeriod < c.MinPeriod:
		return fmt.Errorf("shuffle: period range [%s, %s) is invalid", c.MinPeriod, c.MaxPeriod)
	case c.GlyphInterval <= 0:
		return errors.New("shuffle: glyph interval must be positive")
	case c.InitialDelay < 0 || c.StartDelay < 0 || c.SettleDelay < 0:
		return errors.New("shuffle: delays must not be negative")
	case c.MinIterations < 1 || c.MaxIterations < c.MinIterations:
		return fmt.Errorf("shuffle: iteration range %d..%d is invalid", c.MinIterations, c.MaxIterations)
	}
	return nil
}

// Frame is a snapshot of an animator's state.
type Frame struct {
	WordIndex int      `json:"word"`
	Glyphs    []string `json:"glyphs"`
	Animating bool     `json:"animating"`
	Active    int      `json:"active"`
	Phase     Phase    `json:"phase"`
}

// Option configures an Animator.
type Option func(*Animator)

// WithConfig overrides the default timings.
func WithConfig(cfg Config) Option { return func(a *Animator) { a.cfg = cfg } }

// WithWords overrides the word bank.
func WithWords(words []Word) Option { return func(a *Animator) { a.words = words } }

// WithPool overrides the filler glyph pool.
func WithPool(pool []rune) Option { return func(a *Animator) { a.pool = pool } }

// WithRand sets the random source. Each animator should own its source.
func WithRand(r *rand.Rand) Option { return func(a *Animator) { a.rng = r } }

// OnFrame registers a callback invoked after every state change.
func OnFrame(f func(Frame)) Option { return func(a *Animator) { a.onFrame = f } }

// Animator runs the shuffle state machine. All methods and timer callbacks
// must run on the scheduler's goroutine; the animator does no locking.
type Animator struct {
	cfg     Config
	words   []Word
	pool    []rune
	rng     *rand.Rand
	sched   sched.Scheduler
	onFrame func(Frame)

	wordIndex int
	display   []rune
	animating bool
	active    int
	phase     Phase
	target    Word
	remaining int

	initial sched.Timer
	repeat  sched.Timer
	step    sched.Timer
	started bool
	stopped bool
}

// New builds an animator driven by s.
func New(s sched.Scheduler, opts ...Option) (*Animator, error) {
	a := &Animator{
		cfg:    DefaultConfig(),
		words:  DefaultWords,
		pool:   DefaultPool,
		sched:  s,
		active: NoPosition,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(a.words) == 0 {
		return nil, errors.New("shuffle: word bank is empty")
	}
	for i, w := range a.words {
		if len(w) == 0 {
			return nil, fmt.Errorf("shuffle: word %d is empty", i)
		}
	}
	if len(a.pool) == 0 {
		return nil, errors.New("shuffle: glyph pool is empty")
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if a.onFrame == nil {
		a.onFrame = func(Frame) {}
	}
	a.display = append([]rune(nil), a.words[0]...)
	return a, nil
}

// Start shows the first word and arms the initial and repeating triggers.
func (a *Animator) Start() {
	if a.started || a.stopped {
		return
	}
	a.started = true
	a.emit()
	a.initial = a.sched.AfterFunc(a.cfg.InitialDelay, func() {
		a.initial = nil
		a.Trigger()
	})
	a.armRepeat()
}

// Stop cancels every pending timer. Nothing mutates the state afterwards.
func (a *Animator) Stop() {
	a.stopped = true
	for _, t := range []sched.Timer{a.initial, a.repeat, a.step} {
		if t != nil {
			t.Stop()
		}
	}
	a.initial, a.repeat, a.step = nil, nil, nil
}

func (a *Animator) armRepeat() {
	span := int64(a.cfg.MaxPeriod - a.cfg.MinPeriod)
	period := a.cfg.MinPeriod
	if span > 0 {
		period += time.Duration(a.rng.Int64N(span))
	}
	a.repeat = a.sched.AfterFunc(period, func() {
		a.Trigger()
		if !a.stopped {
			a.armRepeat()
		}
	})
}

// Trigger starts a transition to a new word. It reports false, and does
// nothing, while a transition is already running or after Stop.
func (a *Animator) Trigger() bool {
	if a.stopped || a.animating {
		return false
	}
	a.selectWord()
	return true
}

func (a *Animator) selectWord() {
	a.phase = Selecting
	next := a.rng.IntN(len(a.words))
	if len(a.words) > 1 {
		for next == a.wordIndex {
			next = a.rng.IntN(len(a.words))
		}
	}
	a.wordIndex = next
	a.target = a.words[next]
	a.animating = true

	for len(a.display) < len(a.target) {
		a.display = append(a.display, a.randomGlyph())
	}
	a.display = a.display[:len(a.target)]
	a.emit()

	a.step = a.sched.AfterFunc(a.cfg.StartDelay, func() { a.transition(0) })
}

func (a *Animator) transition(pos int) {
	if a.stopped {
		return
	}
	if pos >= len(a.target) {
		a.settle()
		return
	}
	a.phase = Transitioning
	a.active = pos
	a.remaining = a.cfg.MinIterations + a.rng.IntN(a.cfg.MaxIterations-a.cfg.MinIterations+1)
	a.emit()
	a.step = a.sched.AfterFunc(a.cfg.GlyphInterval, a.flicker)
}

func (a *Animator) flicker() {
	if a.stopped {
		return
	}
	a.display[a.active] = a.randomGlyph()
	a.remaining--
	if a.remaining > 0 {
		a.emit()
		a.step = a.sched.AfterFunc(a.cfg.GlyphInterval, a.flicker)
		return
	}
	a.display[a.active] = a.target[a.active]
	a.emit()
	next := a.active + 1
	a.step = a.sched.AfterFunc(a.cfg.SettleDelay, func() { a.transition(next) })
}

// settle assigns the exact target and publishes one Settling frame before
// returning to Idle.
func (a *Animator) settle() {
	a.phase = Settling
	a.display = append(a.display[:0], a.target...)
	a.active = NoPosition
	a.step = nil
	a.emit()

	a.animating = false
	a.phase = Idle
	a.emit()
}

func (a *Animator) randomGlyph() rune {
	return a.pool[a.rng.IntN(len(a.pool))]
}

func (a *Animator) emit() {
	a.onFrame(a.Snapshot())
}

// Snapshot returns the current state.
func (a *Animator) Snapshot() Frame {
	glyphs := make([]string, len(a.display))
	for i, r := range a.display {
		glyphs[i] = string(r)
	}
	return Frame{
		WordIndex: a.wordIndex,
		Glyphs:    glyphs,
		Animating: a.animating,
		Active:    a.active,
		Phase:     a.phase,
	}
}

// Words returns the word bank.
func (a *Animator) Words() []Word { return a.words }
