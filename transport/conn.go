// Package transport abstracts an already-accepted bidirectional byte
// stream. The HTTP back-end only ever talks to these interfaces, so
// tests can run against [backhand/transport/pipe] and deployments
// against [backhand/transport/netconn].
package transport

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConnClosed        = errors.New("connection is closed")
	ErrConnListnerClosed = errors.New("conn listener is closed")
	ErrDeadLineExceeded  = errors.New("deadline exceeded")
)

// Addr identifies one endpoint of a connection.
type Addr interface {
	// Identifier distinguishes endpoints within one transport.
	Identifier() any
	// String renders the address, typically as "host:port".
	String() string
}

type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	LocalAddr() Addr
	RemoteAddr() Addr

	// Zero time means no deadline.
	SetReadDeadLine(t time.Time)
	SetWriteDeadLine(t time.Time)
}

type ConnListener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
}
