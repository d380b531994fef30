// Package observability provides structured logging and metrics for
// registry resolutions.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//
// Both plug into a registry as container.Observer values:
//
//	metrics, _ := observability.NewMetrics(otel.Meter("pore"))
//	r := container.New(container.WithObserver(observability.Chain(
//	    observability.LogResolutions(logger),
//	    metrics.Observe,
//	)))
package observability
