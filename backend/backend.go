// Package backend bridges one accepted connection to one handler
// invocation: materialize the request, hand it to the injected
// handler, serialize the response, close the connection.
//
// The baseline serves exactly one request per connection. A persistent
// variant would loop exchanges until the peer signals Connection:
// close and answer 411 Length Required when a would-be-persistent
// request carries no Content-Length; that variant does not exist yet,
// which is why [http.StatusLengthRequired] is reserved but never
// emitted here.
package backend

import (
	"context"
	"log/slog"
	"strings"

	"backhand/handler"
	"backhand/http"
	"backhand/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// Back accepts one connection and owns it until it is closed.
type Back interface {
	Accept(ctx context.Context, con transport.Conn) error
}

// Synthetic headers appended to every materialized request. Values are
// endpoint addresses with any leading slash of the platform rendering
// stripped.
const (
	LocalAddressHeader  = "X-Backhand-LocalAddress"
	RemoteAddressHeader = "X-Backhand-RemoteAddress"
)

// Basic is the baseline [Back]: one exchange, then close.
type Basic struct {
	handler handler.Handler
	logger  *slog.Logger
	clock   clock.Clock

	opts    Options
	metrics metrics
}

var _ Back = (*Basic)(nil)

func New(h handler.Handler, logger *slog.Logger, clk clock.Clock, opts Options) *Basic {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Basic{
		handler: h,
		logger:  logger,
		clock:   clk,
		opts:    opts,
		metrics: newMetrics(),
	}
}

// Accept serves the connection. Whatever happens, con is closed before
// Accept returns; the returned error is for logging only and is never
// a reason to tear anything else down.
func (b *Basic) Accept(ctx context.Context, con transport.Conn) (err error) {
	b.metrics.add(ctx, b.metrics.accepted)

	defer func() {
		if cerr := con.Close(); cerr != nil {
			b.logger.Error("error when closing connection", "error", cerr)
		}
	}()

	request, err := b.readRequest(con)
	if err != nil {
		b.metrics.add(ctx, b.metrics.malformed)
		// The head of the response is still ours to write, so report
		// the rejection before closing. The peer may be gone; that's
		// fine.
		b.writeBestEffort(con, http.NewResponse(http.StatusBadRequest))
		return errors.Wrap(err, "materializing request")
	}

	response, err := b.doHandle(request)
	if err != nil {
		b.metrics.add(ctx, b.metrics.faults)
		b.writeBestEffort(con, http.NewResponse(http.StatusInternalServerError))
		return errors.Wrap(err, "handling request")
	}

	if err := b.writeResponse(con, response); err != nil {
		return errors.Wrap(err, "writing response")
	}

	return nil
}

func (b *Basic) readRequest(con transport.Conn) (http.Request, error) {
	if timeout := b.opts.Timeout.ReadTimeout; timeout > 0 {
		con.SetReadDeadLine(b.clock.Now().Add(timeout))
	}

	var request http.Request
	if err := http.NewRequestDecoder(con, b.opts.Decode).Decode(&request); err != nil {
		return http.Request{}, err
	}

	request = request.
		WithHeader(LocalAddressHeader, formatAddr(con.LocalAddr())).
		WithHeader(RemoteAddressHeader, formatAddr(con.RemoteAddr()))

	return request, nil
}

func (b *Basic) doHandle(request http.Request) (response http.Response, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("handler panicked: %v", e)
		}
	}()

	return b.handler.Handle(request)
}

func (b *Basic) writeResponse(con transport.Conn, response http.Response) error {
	if timeout := b.opts.Timeout.WriteTimeout; timeout > 0 {
		con.SetWriteDeadLine(b.clock.Now().Add(timeout))
	}

	if response.Version == (http.Version{}) {
		response.Version = http.Version11
	}

	return http.NewResponseEncoder(con, b.opts.Encode).Encode(response)
}

func (b *Basic) writeBestEffort(con transport.Conn, response http.Response) {
	if err := b.writeResponse(con, response); err != nil {
		b.logger.Debug("best-effort error response not written", "error", err)
	}
}

// formatAddr renders an endpoint address without the leading slash
// some platforms prefix (e.g. "/127.0.0.1:80").
func formatAddr(addr transport.Addr) string {
	return strings.TrimPrefix(addr.String(), "/")
}
