// Package stream broadcasts simulation frames to websocket clients so
// external renderers can follow a run. It is a read-only consumer of the
// fluid core; the stepping loop stays single-threaded and pushes frames
// between steps.
package stream

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pongo192/sphlab/internal/fluid"
)

// Frame is one broadcast snapshot: particle positions plus enough step
// bookkeeping for a client to pace playback.
type Frame struct {
	Time      float64      `json:"time"`
	Dt        float64      `json:"dt"`
	Positions [][3]float64 `json:"positions"`
}

// FrameOf packs the system's current particle positions into a frame.
func FrameOf(s *fluid.System) Frame {
	particles := s.Particles()
	f := Frame{
		Time:      s.Time(),
		Dt:        s.Dt(),
		Positions: make([][3]float64, len(particles)),
	}
	for i, p := range particles {
		f.Positions[i] = [3]float64{p.Position.X, p.Position.Y, p.Position.Z}
	}
	return f
}

type Server struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away. Incoming messages are drained and ignored.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	slog.Info("client connected", "remote", conn.RemoteAddr())

	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Error("websocket read failed", "err", err)
				}
				return
			}
		}
	}()
}

// Broadcast sends the frame to every connected client, dropping clients
// whose writes fail.
func (s *Server) Broadcast(f Frame) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(f); err != nil {
			s.drop(conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if ok {
		conn.Close()
		slog.Info("client disconnected", "remote", conn.RemoteAddr())
	}
}
