package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
)

// NewTCPConn wraps an accepted network connection.
func NewTCPConn(conn net.Conn) *LineConn {
	return NewLineConn(conn, conn, conn, conn.RemoteAddr().String())
}

// ServeTCP accepts connections on ln and hands each to h in its own
// goroutine until ctx is cancelled. It waits for running handlers to return.
func ServeTCP(ctx context.Context, ln net.Listener, h Handler, logger *slog.Logger) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("tcp listener started", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Warn("tcp accept failed", "error", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := NewTCPConn(conn)
			defer t.Close()
			if err := h.Serve(ctx, t); err != nil {
				logger.Debug("tcp session ended", "remote", t.RemoteAddr(), "error", err)
			}
		}()
	}
}
