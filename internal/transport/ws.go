package transport

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsCloseGrace = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSConn carries one protocol line per websocket text frame.
type WSConn struct {
	conn   *websocket.Conn
	remote string

	closeOnce sync.Once
	closeErr  error
}

// Upgrade turns an HTTP request into a websocket transport.
func Upgrade(w http.ResponseWriter, r *http.Request) (*WSConn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return NewWSConn(conn), nil
}

// NewWSConn wraps an established websocket connection.
func NewWSConn(conn *websocket.Conn) *WSConn {
	conn.SetReadLimit(MaxLineBytes)
	return &WSConn{conn: conn, remote: conn.RemoteAddr().String()}
}

func (c *WSConn) ReadLine() (string, error) {
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if errors.Is(err, websocket.ErrReadLimit) {
				return "", ErrLineTooLong
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", io.EOF
			}
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (c *WSConn) WriteLine(line string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *WSConn) Close() error {
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsCloseGrace)) //nolint:errcheck
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *WSConn) RemoteAddr() string { return c.remote }
