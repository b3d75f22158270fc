package backend

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "backhand/backend"

type metrics struct {
	accepted  metric.Int64Counter
	malformed metric.Int64Counter
	faults    metric.Int64Counter
}

// Instruments come from the global meter provider; without an SDK
// installed they are no-ops.
func newMetrics() metrics {
	meter := otel.Meter(scopeName)

	var m metrics
	var err error

	m.accepted, err = meter.Int64Counter("backhand.connections.accepted",
		metric.WithDescription("Connections handed to the back-end"),
		metric.WithUnit("{connection}"))
	if err != nil {
		otel.Handle(err)
	}

	m.malformed, err = meter.Int64Counter("backhand.requests.malformed",
		metric.WithDescription("Connections dropped because the request could not be materialized"),
		metric.WithUnit("{request}"))
	if err != nil {
		otel.Handle(err)
	}

	m.faults, err = meter.Int64Counter("backhand.handler.faults",
		metric.WithDescription("Handler errors and panics recovered at the connection boundary"),
		metric.WithUnit("{fault}"))
	if err != nil {
		otel.Handle(err)
	}

	return m
}

func (metrics) add(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}
