// Package ssh serves the line protocol over SSH. Clients with a PTY get line
// editing from an x/term Terminal; clients without one (piped stdin, bots)
// get plain newline framing.
package ssh

import (
	"sync"

	gossh "github.com/gliderlabs/ssh"
	"golang.org/x/term"

	"dungeon-of-doom/internal/transport"
)

// SessionConn is a transport.Transport over one interactive SSH session.
type SessionConn struct {
	session gossh.Session
	term    *term.Terminal
	winCh   <-chan gossh.Window

	closeOnce sync.Once
	closeErr  error
}

// NewSessionConn wraps a PTY session. pty holds the initial window size;
// winCh delivers later resizes.
func NewSessionConn(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionConn {
	t := term.NewTerminal(s, "")
	t.SetSize(pty.Window.Width, pty.Window.Height) //nolint:errcheck
	c := &SessionConn{session: s, term: t, winCh: winCh}
	go c.trackResize()
	return c
}

// NewPlainConn wraps a session without a PTY.
func NewPlainConn(s gossh.Session) *transport.LineConn {
	return transport.NewLineConn(s, s, s, s.RemoteAddr().String())
}

// trackResize drains the window-change channel for the life of the session.
func (c *SessionConn) trackResize() {
	for win := range c.winCh {
		c.term.SetSize(win.Width, win.Height) //nolint:errcheck
	}
}

func (c *SessionConn) ReadLine() (string, error) {
	line, err := c.term.ReadLine()
	if err != nil {
		return "", err
	}
	if len(line) > transport.MaxLineBytes {
		return "", transport.ErrLineTooLong
	}
	return line, nil
}

// WriteLine writes through the terminal, which handles the \r\n translation
// and redraws any half-typed input.
func (c *SessionConn) WriteLine(line string) error {
	_, err := c.term.Write([]byte(line + "\n"))
	return err
}

func (c *SessionConn) Close() error {
	c.closeOnce.Do(func() { c.closeErr = c.session.Close() })
	return c.closeErr
}

func (c *SessionConn) RemoteAddr() string { return c.session.RemoteAddr().String() }

// PlayerName is the SSH login name, used as the initial display name.
func (c *SessionConn) PlayerName() string { return c.session.User() }

// plainConn adds the login name to a LineConn.
type plainConn struct {
	*transport.LineConn
	user string
}

func (c plainConn) PlayerName() string { return c.user }
