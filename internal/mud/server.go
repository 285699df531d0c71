// Package mud speaks the Dungeon of Doom line protocol. A Server owns the
// game handle and the registry of live sessions; every connection, whatever
// its transport, becomes a Session that turns client lines into engine calls
// and engine events into server lines.
package mud

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"dungeon-of-doom/internal/game"
	"dungeon-of-doom/internal/runlog"
	"dungeon-of-doom/internal/transport"
)

// Server serves one game to any number of connections.
type Server struct {
	game   *game.Game
	logger *slog.Logger
	sink   runlog.Sink

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewServer creates a Server for g. A nil sink discards run records.
func NewServer(g *game.Game, logger *slog.Logger, sink runlog.Sink) *Server {
	if sink == nil {
		sink = runlog.Nop{}
	}
	return &Server{
		game:     g,
		logger:   logger,
		sink:     sink,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Serve runs one connection to completion. It implements transport.Handler.
func (srv *Server) Serve(ctx context.Context, t transport.Transport) error {
	sess := newSession(srv, t)
	srv.mu.Lock()
	srv.sessions[sess.ID] = sess
	srv.mu.Unlock()
	defer func() {
		srv.mu.Lock()
		delete(srv.sessions, sess.ID)
		srv.mu.Unlock()
	}()

	sess.logger.Info("session opened")
	if err := sess.Run(ctx); err != nil {
		sess.logger.Warn("session ended with error", "error", err)
		return err
	}
	return nil
}

var _ transport.Handler = (*Server)(nil)

// SessionInfo describes one live connection.
type SessionInfo struct {
	ID        string    `json:"id"`
	Remote    string    `json:"remote"`
	PlayerID  int       `json:"player_id"`
	State     string    `json:"state"`
	Connected time.Time `json:"connected"`
}

// Sessions lists the live connections, oldest first.
func (srv *Server) Sessions() []SessionInfo {
	srv.mu.Lock()
	out := make([]SessionInfo, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		out = append(out, SessionInfo{
			ID:        s.ID.String(),
			Remote:    s.t.RemoteAddr(),
			PlayerID:  s.PlayerID(),
			State:     s.State().String(),
			Connected: s.opened,
		})
	}
	srv.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Connected.Before(out[j].Connected) })
	return out
}

// Status is the document served on the status endpoint.
type Status struct {
	game.Status
	Sessions []SessionInfo `json:"sessions"`
}

// Status snapshots the game and the session registry.
func (srv *Server) Status() Status {
	return Status{
		Status:   srv.game.Snapshot(),
		Sessions: srv.Sessions(),
	}
}

func (srv *Server) record(rec runlog.Record) {
	if err := srv.sink.Write(rec); err != nil {
		srv.logger.Warn("run log write failed", "session", rec.ID, "error", err)
	}
}
