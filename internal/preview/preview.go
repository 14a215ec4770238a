// Package preview runs the shuffle columns and the section tracker in the
// terminal against a synthetic page, so the choreography can be watched
// without a browser.
package preview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/config"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/sched"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/sections"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/shuffle"
)

// pageHeight is the synthetic viewport height in pixels. Every section is
// one viewport tall.
const pageHeight = 800

type columnMsg struct {
	side  string
	frame shuffle.Frame
}

type displayMsg bool

type navMsg sections.NavState

// poster hands work to the goroutine that owns the driver's state.
// *sched.Loop satisfies it.
type poster interface {
	Post(f func()) bool
	TryPost(f func()) bool
}

// driver owns the animators and the tracker. Everything except Scroll and
// SetTheme runs on the scheduler's goroutine.
type driver struct {
	loop    poster
	send    func(tea.Msg)
	tracker *sections.Tracker
	nav     *sections.Nav
	anims   []*shuffle.Animator

	// Inputs from the UI goroutine. Only the latest values matter, so a
	// single pending apply covers any number of key presses.
	mu        sync.Mutex
	wantY     float64
	wantTheme i18n.Theme
	pending   atomic.Bool

	// Loop-owned copies of what the tracker last saw.
	y     float64
	theme i18n.Theme
}

func newDriver(s sched.Scheduler, loop poster, cfg *config.Config, send func(tea.Msg)) (*driver, error) {
	theme := i18n.ParseTheme(cfg.Site.DefaultTheme)
	d := &driver{
		loop:      loop,
		send:      send,
		nav:       sections.NewNav(),
		wantTheme: theme,
		theme:     theme,
	}
	d.tracker = sections.NewTracker(theme, func(dark bool) {
		send(displayMsg(dark))
	})
	for _, side := range []string{"left", "right"} {
		anim, err := shuffle.New(s,
			shuffle.WithConfig(cfg.Animation),
			shuffle.OnFrame(func(f shuffle.Frame) {
				send(columnMsg{side: side, frame: f})
			}))
		if err != nil {
			return nil, fmt.Errorf("building %s column: %w", side, err)
		}
		d.anims = append(d.anims, anim)
	}
	return d, nil
}

func (d *driver) start() {
	for _, a := range d.anims {
		a.Start()
	}
	d.scrollTo(0)
}

func (d *driver) stop() {
	for _, a := range d.anims {
		a.Stop()
	}
}

func (d *driver) scrollTo(y float64) {
	d.y = y
	page := sections.StackedPage(pageHeight, y)
	d.tracker.Update(page)
	before := d.nav.State()
	if after := d.nav.Update(page, y); after != before {
		d.send(navMsg(after))
	}
}

// Scroll moves the synthetic page to y. It never blocks.
func (d *driver) Scroll(y float64) {
	d.mu.Lock()
	d.wantY = y
	d.mu.Unlock()
	d.kick()
}

// SetTheme switches the theme the tracker maps sections with. It never
// blocks.
func (d *driver) SetTheme(theme i18n.Theme) {
	d.mu.Lock()
	d.wantTheme = theme
	d.mu.Unlock()
	d.kick()
}

// kick queues an apply unless one is already pending. When the loop's queue
// is full the post moves to its own goroutine, since the loop may be
// waiting on the UI goroutine that called us.
func (d *driver) kick() {
	if !d.pending.CompareAndSwap(false, true) {
		return
	}
	if !d.loop.TryPost(d.apply) {
		go d.loop.Post(d.apply)
	}
}

func (d *driver) apply() {
	d.pending.Store(false)
	d.mu.Lock()
	y, theme := d.wantY, d.wantTheme
	d.mu.Unlock()

	if theme != d.theme {
		d.theme = theme
		d.tracker.SetTheme(theme)
	}
	if y != d.y {
		d.scrollTo(y)
	}
}

// Run shows the preview until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sched.NewLoop(cfg.Live.Queue)

	var p *tea.Program
	d, err := newDriver(loop, loop, cfg, func(msg tea.Msg) { p.Send(msg) })
	if err != nil {
		return err
	}
	p = tea.NewProgram(NewModel(d, cfg), tea.WithContext(ctx), tea.WithAltScreen())

	loop.Post(d.start)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(gctx)
		d.stop()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("running preview: %w", err)
		}
		return nil
	})
	return g.Wait()
}
