package transport

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// LineConn frames a byte stream into newline-terminated lines. It serves TCP
// connections and the local stdin/stdout game alike.
type LineConn struct {
	sc     *bufio.Scanner
	w      *bufio.Writer
	closer io.Closer
	remote string

	closeOnce sync.Once
	closeErr  error
}

// NewLineConn wraps r and w. closer may be nil.
func NewLineConn(r io.Reader, w io.Writer, closer io.Closer, remote string) *LineConn {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), MaxLineBytes+1)
	return &LineConn{
		sc:     sc,
		w:      bufio.NewWriter(w),
		closer: closer,
		remote: remote,
	}
}

func (c *LineConn) ReadLine() (string, error) {
	if !c.sc.Scan() {
		err := c.sc.Err()
		switch {
		case err == nil:
			return "", io.EOF
		case errors.Is(err, bufio.ErrTooLong):
			return "", ErrLineTooLong
		}
		return "", err
	}
	line := strings.TrimSuffix(c.sc.Text(), "\r")
	if len(line) > MaxLineBytes {
		return "", ErrLineTooLong
	}
	return line, nil
}

func (c *LineConn) WriteLine(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *LineConn) Close() error {
	c.closeOnce.Do(func() {
		if c.closer != nil {
			c.closeErr = c.closer.Close()
		}
	})
	return c.closeErr
}

func (c *LineConn) RemoteAddr() string { return c.remote }
