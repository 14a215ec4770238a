package live

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub accepts live connections and keeps count of running sessions.
type Hub struct {
	ctx      context.Context
	log      *zap.Logger
	max      int
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub returns a hub whose sessions end when ctx is cancelled. max caps
// concurrent sessions; zero means unlimited.
func NewHub(ctx context.Context, log *zap.Logger, max int) *Hub {
	return &Hub{
		ctx: ctx,
		log: log,
		max: max,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]*Session),
	}
}

// Active returns the number of running sessions.
func (h *Hub) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// tryAdd registers s unless the hub is full. The check and the insert share
// one critical section so concurrent upgrades cannot overshoot max.
func (h *Hub) tryAdd(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.max > 0 && len(h.sessions) >= h.max {
		return false
	}
	h.sessions[s.ID] = s
	return true
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID)
}

// Serve upgrades the request and runs a session with st until either side
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, st Settings) {
	sess, err := NewSession(st, h.log)
	if err != nil {
		h.log.Error("building live session", zap.Error(err))
		http.Error(w, "live session unavailable", http.StatusInternalServerError)
		return
	}

	if !h.tryAdd(sess) {
		http.Error(w, "too many live sessions", http.StatusServiceUnavailable)
		return
	}
	defer h.remove(sess)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade", zap.Error(err))
		return
	}
	h.log.Debug("live session started", zap.String("session", sess.ID))

	if err := sess.Run(h.ctx, conn); err != nil {
		h.log.Warn("live session failed", zap.String("session", sess.ID), zap.Error(err))
	}
}
