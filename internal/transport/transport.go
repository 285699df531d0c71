// Package transport carries the line protocol over the wire. Each Transport
// is one client connection that reads and writes whole lines; framing and
// size limits live here so the protocol layer never sees raw bytes.
package transport

import (
	"context"
	"errors"
)

// MaxLineBytes is the longest inbound line accepted, newline excluded.
const MaxLineBytes = 4096

// ErrLineTooLong is returned by ReadLine when a client sends an oversized
// line. It ends the session.
var ErrLineTooLong = errors.New("transport: line too long")

// Transport is one client connection. ReadLine returns io.EOF once the peer
// has gone. WriteLine may be called concurrently with ReadLine but not with
// itself.
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// Handler runs one connection to completion.
type Handler interface {
	Serve(ctx context.Context, t Transport) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, t Transport) error

func (f HandlerFunc) Serve(ctx context.Context, t Transport) error { return f(ctx, t) }

// Named is implemented by transports that know the client's login name.
type Named interface {
	PlayerName() string
}
