package apiclient

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/venue-master/admin-console/pkg/apiclient"

type metrics struct {
	refreshes metric.Int64Counter
	replays   metric.Int64Counter
	expired   metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) *metrics {
	meter := mp.Meter(instrumentationName)
	m := &metrics{}
	var err error
	if m.refreshes, err = meter.Int64Counter("apiclient.refresh",
		metric.WithDescription("Token refresh exchanges by outcome")); err != nil {
		m.refreshes, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("apiclient.refresh")
	}
	if m.replays, err = meter.Int64Counter("apiclient.replay",
		metric.WithDescription("Requests replayed after a 401")); err != nil {
		m.replays, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("apiclient.replay")
	}
	if m.expired, err = meter.Int64Counter("apiclient.auth_expired",
		metric.WithDescription("Sessions torn down after an unrecoverable 401")); err != nil {
		m.expired, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("apiclient.auth_expired")
	}
	return m
}

func (m *metrics) refreshed(ctx context.Context, outcome string) {
	m.refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *metrics) replayed(ctx context.Context, skippedRefresh bool) {
	m.replays.Add(ctx, 1, metric.WithAttributes(attribute.Bool("skipped_refresh", skippedRefresh)))
}

func (m *metrics) authExpired(ctx context.Context) {
	m.expired.Add(ctx, 1)
}
