package observability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/km-arc/go-pore/framework/container"
)

// Metrics records registry resolutions with OpenTelemetry instruments.
type Metrics struct {
	resolutions   metric.Int64Counter
	latency       metric.Float64Histogram
	undefinedKeys metric.Int64Counter
}

// NewMetrics creates the resolution instruments on meter.
//
//	import "go.opentelemetry.io/otel"
//	m, err := observability.NewMetrics(otel.Meter("pore"))
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolutions, err := meter.Int64Counter("pore.resolutions",
		metric.WithDescription("Number of registry resolutions"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("pore.resolution.latency_ms",
		metric.WithDescription("Resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	undefinedKeys, err := meter.Int64Counter("pore.undefined_keys",
		metric.WithDescription("Number of resolutions of names without a binding"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		resolutions:   resolutions,
		latency:       latency,
		undefinedKeys: undefinedKeys,
	}, nil
}

// Observe records res. Its signature matches container.Observer.
func (m *Metrics) Observe(res container.Resolution) {
	ctx := context.Background()

	outcome := "ok"
	if res.Err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("name", res.Name),
		attribute.Bool("shared", res.Shared),
		attribute.Bool("cached", res.Cached),
		attribute.String("outcome", outcome),
	)

	m.resolutions.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(res.Duration.Microseconds())/1000, attrs)

	if errors.Is(res.Err, container.ErrUndefinedKey) {
		var undefined *container.UndefinedKeyError
		name := res.Name
		if errors.As(res.Err, &undefined) {
			name = undefined.Name
		}
		m.undefinedKeys.Add(ctx, 1, metric.WithAttributes(attribute.String("name", name)))
	}
}
