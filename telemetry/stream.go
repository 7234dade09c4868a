package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// CreatureView is the wire form of one creature in a tick frame.
type CreatureView struct {
	ID      uint32  `json:"id"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Species string  `json:"species"`
	Sex     string  `json:"sex"`
	Adult   bool    `json:"adult"`
	Health  float64 `json:"health"`
	Born    int32   `json:"born"`
}

// TickFrame is broadcast to stream subscribers every few ticks.
type TickFrame struct {
	Type      string         `json:"type"`
	Tick      int32          `json:"tick"`
	Prey      int            `json:"prey"`
	Pred      int            `json:"pred"`
	Grass     int            `json:"grass"`
	Creatures []CreatureView `json:"creatures"`
}

type hello struct {
	Type string `json:"type"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Stream fans tick frames out to websocket subscribers on /ws.
type Stream struct {
	w, h     int
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewStream creates a hub for a w x h world.
func NewStream(w, h int) *Stream {
	return &Stream{
		w: w,
		h: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the mux serving the /ws endpoint.
func (s *Stream) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func (s *Stream) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream upgrade failed", "err", err)
		return
	}
	c := &client{conn: conn}
	if err := c.send(hello{Type: "config", W: s.w, H: s.h}); err != nil {
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	slog.Info("stream client connected", "remote", r.RemoteAddr)

	// Subscribers are read-only; drain until the peer goes away.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	s.drop(c)
}

func (s *Stream) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// Clients returns the number of connected subscribers.
func (s *Stream) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends v to every subscriber, dropping those that fail.
func (s *Stream) Broadcast(v any) {
	s.mu.Lock()
	list := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		list = append(list, c)
	}
	s.mu.Unlock()

	for _, c := range list {
		if err := c.send(v); err != nil {
			slog.Debug("stream client send failed", "err", err)
			s.drop(c)
		}
	}
}

// ListenAndServe serves the stream on addr until ctx is cancelled.
func (s *Stream) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
