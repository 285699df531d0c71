package ssh

import (
	"context"
	"errors"
	"log/slog"
	"net"

	gossh "github.com/gliderlabs/ssh"

	"dungeon-of-doom/internal/transport"
)

// NewServer builds an SSH server that hands every session to h. Any client
// may log in; the login name only seeds the display name.
func NewServer(signer gossh.Signer, h transport.Handler, logger *slog.Logger) *gossh.Server {
	return &gossh.Server{
		Handler: func(s gossh.Session) {
			var t transport.Transport
			if pty, winCh, ok := s.Pty(); ok {
				t = NewSessionConn(s, pty, winCh)
			} else {
				t = plainConn{LineConn: NewPlainConn(s), user: s.User()}
			}
			defer t.Close()
			if err := h.Serve(s.Context(), t); err != nil {
				logger.Debug("ssh session ended", "user", s.User(), "remote", t.RemoteAddr(), "error", err)
			}
		},
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
}

// Serve runs srv on ln until ctx is cancelled, then closes every connection.
func Serve(ctx context.Context, srv *gossh.Server, ln net.Listener, logger *slog.Logger) error {
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	logger.Info("ssh listener started", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, gossh.ErrServerClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}
