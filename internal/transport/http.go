package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/matryer/way"
)

// Routes served by NewRouter.
const (
	PathPlay   = "/play"
	PathStatus = "/status"
)

// StatusFunc returns a JSON-encodable view of the running game.
type StatusFunc func() any

// NewRouter serves websocket play on /play and the status document on
// /status. Websocket sessions run until the connection closes or ctx ends.
func NewRouter(ctx context.Context, h Handler, status StatusFunc, logger *slog.Logger) http.Handler {
	r := way.NewRouter()
	r.HandleFunc("GET", PathPlay, func(w http.ResponseWriter, req *http.Request) {
		t, err := Upgrade(w, req)
		if err != nil {
			logger.Warn("websocket upgrade failed", "remote", req.RemoteAddr, "error", err)
			return
		}
		defer t.Close()
		if err := h.Serve(ctx, t); err != nil {
			logger.Debug("websocket session ended", "remote", t.RemoteAddr(), "error", err)
		}
	})
	r.HandleFunc("GET", PathStatus, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status()); err != nil {
			logger.Warn("status encode failed", "error", err)
		}
	})
	return r
}
