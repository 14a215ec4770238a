// Package live runs the page's animated pieces for one visitor over a
// WebSocket: the browser reports scroll geometry, the session answers with
// render frames.
package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/i18n"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/sched"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/sections"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/shuffle"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/typewriter"
)

// Conn is the transport a session talks over. *websocket.Conn satisfies it.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Settings are the per-visitor inputs of a session.
type Settings struct {
	Language  i18n.Language
	Theme     i18n.Theme
	Typed     []string
	Animation shuffle.Config
	Typing    typewriter.Config
	Left      shuffle.Variant
	Right     shuffle.Variant
	Queue     int
}

// Inbound is a message from the browser.
type Inbound struct {
	Type     string             `json:"type"`
	Viewport *sections.Snapshot `json:"viewport,omitempty"`
	Theme    string             `json:"theme,omitempty"`
}

// Message is a message to the browser.
type Message struct {
	Type    string             `json:"type"`
	Session string             `json:"session,omitempty"`
	Dark    *bool              `json:"dark,omitempty"`
	Nav     *sections.NavState `json:"nav,omitempty"`
	Glyphs  *shuffle.View      `json:"glyphs,omitempty"`
	Typed   *typewriter.Frame  `json:"typed,omitempty"`
}

const (
	TypeHello    = "hello"
	TypeViewport = "viewport"
	TypeTheme    = "theme"
	TypeDisplay  = "display"
	TypeNav      = "nav"
	TypeGlyphs   = "glyphs"
	TypeTyped    = "typed"
)

type column struct {
	side    string
	variant shuffle.Variant
	anim    *shuffle.Animator
	last    shuffle.Frame
}

// Session is one visitor's live channel. Everything except Run executes on
// the session's loop goroutine.
type Session struct {
	ID  string
	log *zap.Logger

	loop    *sched.Loop
	out     chan Message
	tracker *sections.Tracker
	nav     *sections.Nav
	columns []*column
	typer   *typewriter.Typer
	dark    bool
	dropped int
}

// NewSession wires the tracker, both shuffle columns and the headline
// typer onto a fresh loop. Nothing runs until Run.
func NewSession(st Settings, log *zap.Logger) (*Session, error) {
	if st.Queue <= 0 {
		st.Queue = 64
	}
	id := uuid.NewString()
	s := &Session{
		ID:   id,
		log:  log.With(zap.String("session", id), zap.String("language", string(st.Language))),
		loop: sched.NewLoop(st.Queue),
		out:  make(chan Message, st.Queue),
		nav:  sections.NewNav(),
		dark: true,
	}
	s.tracker = sections.NewTracker(st.Theme, s.publishDark)

	for _, c := range []*column{
		{side: "left", variant: st.Left},
		{side: "right", variant: st.Right},
	} {
		anim, err := shuffle.New(s.loop,
			shuffle.WithConfig(st.Animation),
			shuffle.OnFrame(func(f shuffle.Frame) {
				c.last = f
				s.sendColumn(c)
			}))
		if err != nil {
			return nil, fmt.Errorf("building %s column: %w", c.side, err)
		}
		c.anim = anim
		c.last = anim.Snapshot()
		s.columns = append(s.columns, c)
	}

	if len(st.Typed) > 0 {
		typer, err := typewriter.New(s.loop, st.Typing, st.Typed, nil, func(f typewriter.Frame) {
			s.send(Message{Type: TypeTyped, Typed: &f})
		})
		if err != nil {
			return nil, fmt.Errorf("building typewriter: %w", err)
		}
		s.typer = typer
	}
	return s, nil
}

// Run serves the session until ctx is cancelled or the connection ends.
// Every timer is stopped before Run returns.
func (s *Session) Run(ctx context.Context, conn Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.loop.Post(s.start)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := s.loop.Run(gctx)
		s.teardown()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		return s.write(gctx, conn)
	})
	g.Go(func() error {
		defer cancel()
		return s.read(conn)
	})
	g.Go(func() error {
		// Unblocks the reader and any write stuck on a dead peer.
		<-gctx.Done()
		_ = conn.Close()
		return nil
	})

	err := g.Wait()
	s.log.Debug("live session ended", zap.Int("dropped_frames", s.dropped), zap.Error(err))
	if isClosed(err) {
		return nil
	}
	return err
}

func (s *Session) write(ctx context.Context, conn Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-s.out:
			if err := conn.WriteJSON(m); err != nil {
				return fmt.Errorf("writing %s: %w", m.Type, err)
			}
		}
	}
}

func (s *Session) read(conn Conn) error {
	for {
		var msg Inbound
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("reading: %w", err)
		}
		if !s.loop.Post(func() { s.handle(msg) }) {
			return nil
		}
	}
}

func isClosed(err error) bool {
	if err == nil {
		return true
	}
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		switch ce.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
			return true
		}
		return false
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

func (s *Session) start() {
	s.send(Message{Type: TypeHello, Session: s.ID})
	dark := s.dark
	s.send(Message{Type: TypeDisplay, Dark: &dark})
	for _, c := range s.columns {
		c.anim.Start()
	}
	if s.typer != nil {
		s.typer.Start()
	}
}

func (s *Session) teardown() {
	for _, c := range s.columns {
		c.anim.Stop()
	}
	if s.typer != nil {
		s.typer.Stop()
	}
}

func (s *Session) handle(msg Inbound) {
	switch msg.Type {
	case TypeViewport:
		if msg.Viewport == nil {
			return
		}
		before := s.nav.State()
		s.tracker.Update(*msg.Viewport)
		if after := s.nav.Update(*msg.Viewport, msg.Viewport.ScrollY); after != before {
			s.send(Message{Type: TypeNav, Nav: &after})
		}
	case TypeTheme:
		s.tracker.SetTheme(i18n.ParseTheme(msg.Theme))
	default:
		s.log.Debug("ignoring live message", zap.String("type", msg.Type))
	}
}

func (s *Session) publishDark(dark bool) {
	if dark == s.dark {
		return
	}
	s.dark = dark
	s.send(Message{Type: TypeDisplay, Dark: &dark})
	for _, c := range s.columns {
		s.sendColumn(c)
	}
}

func (s *Session) sendColumn(c *column) {
	view := shuffle.Render(c.last, c.side, s.dark, c.variant)
	s.send(Message{Type: TypeGlyphs, Glyphs: &view})
}

// send never blocks the loop. Frames are full snapshots, so a dropped one
// is superseded by the next.
func (s *Session) send(m Message) {
	select {
	case s.out <- m:
	default:
		s.dropped++
	}
}
