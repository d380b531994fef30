package providers

import (
	"log/slog"
	"sort"

	"github.com/km-arc/go-pore/framework/config"
	"github.com/km-arc/go-pore/framework/container"
	"github.com/km-arc/go-pore/framework/inspect"
	"github.com/km-arc/go-pore/framework/observability"
	"github.com/km-arc/go-pore/framework/routing"
)

// FrameworkTag groups the bindings installed by this package.
const FrameworkTag = "framework"

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound names:
//   - "config"      → *config.Config (tag "framework")
//   - "app.name", "log.level", ... → each setting (tag "config", sorted)
type ConfigServiceProvider struct {
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(r *container.Registry) error {
	r.Instance("config", p.Config, container.Tags(FrameworkTag))

	settings := p.Config.Settings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Instance(k, settings[k], container.Tags("config"))
	}
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound names:
//   - "logger"  → *slog.Logger (tag "framework")
type LoggingServiceProvider struct {
	Logger *slog.Logger
}

func (p *LoggingServiceProvider) Register(r *container.Registry) error {
	r.Instance("logger", p.Logger, container.Tags(FrameworkTag))
	return nil
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the resolution metrics recorder.
//
// Bound names:
//   - "metrics"  → *observability.Metrics (tag "framework")
type MetricsServiceProvider struct {
	Metrics *observability.Metrics
}

func (p *MetricsServiceProvider) Register(r *container.Registry) error {
	r.Instance("metrics", p.Metrics, container.Tags(FrameworkTag))
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router, built on first use.
// The inspector is mounted under /registry when config enables it.
//
// Bound names:
//   - "router"  → *routing.Router (shared, tag "framework")
//
// Requires "config" and "logger".
type RoutingServiceProvider struct{}

func (p *RoutingServiceProvider) Register(r *container.Registry) error {
	r.Singleton("router", func(r *container.Registry) any {
		cfg := container.MustResolve[*config.Config](r, "config")
		logger := container.MustResolve[*slog.Logger](r, "logger")

		router := routing.New(logger)
		if cfg.Registry.Inspector {
			router.Prefix("/registry", inspect.New(r, logger).Routes)
		}
		return router
	}, container.Tags(FrameworkTag))
	return nil
}
