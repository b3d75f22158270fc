// Package netconn adapts stdlib [net] connections and listeners to the
// [backhand/transport] interfaces.
package netconn

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"

	"backhand/transport"
)

type Addr struct {
	addr net.Addr
}

func (a Addr) Identifier() any { return a.addr }
func (a Addr) String() string  { return a.addr.String() }

var _ transport.Addr = Addr{}

type Conn struct {
	con net.Conn
}

var _ transport.Conn = (*Conn)(nil)

func Wrap(con net.Conn) *Conn { return &Conn{con: con} }

func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.con.Read(p)
	return n, mapErr(err)
}

func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.con.Write(p)
	return n, mapErr(err)
}

func (c *Conn) Close() error { return c.con.Close() }

func (c *Conn) LocalAddr() transport.Addr  { return Addr{addr: c.con.LocalAddr()} }
func (c *Conn) RemoteAddr() transport.Addr { return Addr{addr: c.con.RemoteAddr()} }

func (c *Conn) SetReadDeadLine(t time.Time)  { _ = c.con.SetReadDeadline(t) }
func (c *Conn) SetWriteDeadLine(t time.Time) { _ = c.con.SetWriteDeadline(t) }

// mapErr translates [net] failures into the transport sentinels so
// callers don't have to know which transport they run on.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		return transport.ErrConnClosed
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrDeadLineExceeded
	}
	return err
}

type Listener struct {
	l net.Listener
}

var _ transport.ConnListener = (*Listener)(nil)

func Listen(network, address string) (*Listener, error) {
	l, err := net.Listen(network, address)
	if err != nil {
		return nil, err
	}
	return &Listener{l: l}, nil
}

func WrapListener(l net.Listener) *Listener { return &Listener{l: l} }

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	type result struct {
		con net.Conn
		err error
	}

	ch := make(chan result, 1)
	go func() {
		con, err := l.l.Accept()
		ch <- result{con: con, err: err}
	}()

	select {
	case <-ctx.Done():
		// Accept has no cancellation of its own. Close the listener to
		// unblock the goroutine above.
		_ = l.l.Close()
		if res := <-ch; res.err == nil {
			_ = res.con.Close()
		}
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, net.ErrClosed) {
				return nil, transport.ErrConnListnerClosed
			}
			return nil, res.err
		}
		return Wrap(res.con), nil
	}
}

func (l *Listener) Close() error { return l.l.Close() }

// Addr returns the listener's bound address.
func (l *Listener) Addr() transport.Addr { return Addr{addr: l.l.Addr()} }
