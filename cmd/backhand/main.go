// Command backhand serves a tiny demo site with the HTTP/1.1 back-end.
//
// With -otlp, logs and metrics are exported over OTLP gRPC
// (OTEL_EXPORTER_OTLP_ENDPOINT and friends configure the exporters).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"backhand/backend"
	"backhand/handler"
	"backhand/http"
	"backhand/transport/netconn"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const name = "backhand"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	addr := flag.String("addr", "0.0.0.0:8080", "listen address")
	otlp := flag.Bool("otlp", false, "export logs and metrics over OTLP gRPC")
	flag.Parse()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *otlp {
		shutdown, err := setupOTelSDK(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()

		logger = otelslog.NewLogger(name)
	}

	h := handler.JoinCookies(handler.Fork(
		handler.NewRoute("/", handler.Text("Hello world!")),
		handler.NewRoute("/ping", handler.Text("pong")),
		handler.NewRoute("/cookies", handler.Fixed(
			http.NewResponse(http.StatusOK).
				WithHeader("Set-Cookie", "a=1").
				WithHeader("Set-Cookie", "b=2").
				WithBody([]byte("two cookies, one header")),
		)),
	))

	l, err := netconn.Listen("tcp", *addr)
	if err != nil {
		return err
	}

	back := backend.New(h, logger, clock.New(), backend.Options{
		Decode: http.DecodeOptions{
			MaxRequestLineLength: 8192,
			MaxFieldLineLength:   8192,
			MaxContentLength:     1 << 20,
		},
		Timeout: backend.TimeoutOptions{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	})

	front := backend.NewFront(l, back, logger)
	front.Start()
	logger.Info("listening", "addr", l.Addr().String())

	<-ctx.Done()

	logger.Info("shutting down")
	return front.Close()
}
