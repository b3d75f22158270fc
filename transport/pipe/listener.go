package pipe

import (
	"context"
	"sync"

	"backhand/transport"
)

// Listener is a [transport.ConnListener] fed by tests: whatever is
// handed to Push comes out of Accept.
type Listener struct {
	conns chan transport.Conn

	closed chan struct{}
	once   sync.Once
}

var _ transport.ConnListener = (*Listener)(nil)

func NewListener() *Listener {
	return &Listener{
		conns:  make(chan transport.Conn),
		closed: make(chan struct{}),
	}
}

// Push hands conn to a pending (or future) Accept call.
func (l *Listener) Push(ctx context.Context, conn transport.Conn) error {
	select {
	case l.conns <- conn:
		return nil
	case <-l.closed:
		return transport.ErrConnListnerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case conn := <-l.conns:
		return conn, nil
	case <-l.closed:
		return nil, transport.ErrConnListnerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Listener) Close() error {
	l.once.Do(func() { close(l.closed) })
	return nil
}
