package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/km-arc/go-pore/framework/config"
	"github.com/km-arc/go-pore/framework/container"
	"github.com/km-arc/go-pore/framework/manifest"
	"github.com/km-arc/go-pore/framework/observability"
	"github.com/km-arc/go-pore/framework/providers"
	"github.com/km-arc/go-pore/framework/routing"
)

const shutdownTimeout = 5 * time.Second

// Application is the top-level registry owner.
// It embeds the Registry so user code can call app.Register(),
// app.Singleton(), app.Get() directly.
type Application struct {
	*container.Registry
	Providers *container.ProviderSet
}

// New loads configuration from envFiles and bootstraps the application,
// logging to stderr.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	return NewWith(cfg, logger)
}

// NewWith bootstraps the application from an already loaded config.
func NewWith(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	observers := []container.Observer{observability.LogResolutions(logger)}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		m, err := observability.NewMetrics(otel.Meter("github.com/km-arc/go-pore"))
		if err != nil {
			return nil, fmt.Errorf("init metrics: %w", err)
		}
		metrics = m
		observers = append(observers, m.Observe)
	}

	reg := container.New(container.WithObserver(observability.Chain(observers...)))
	app := &Application{
		Registry:  reg,
		Providers: container.NewProviderSet(reg),
	}

	// Framework providers first, manifest last so it can override them.
	core := []container.Provider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
	}
	if metrics != nil {
		core = append(core, &providers.MetricsServiceProvider{Metrics: metrics})
	}
	if cfg.Registry.Manifest != "" {
		core = append(core, &manifest.Provider{Path: cfg.Registry.Manifest})
	}

	for _, p := range core {
		if err := app.RegisterProvider(p); err != nil {
			return nil, err
		}
	}

	logger.Debug("application bootstrapped",
		slog.String("registry", reg.ID()),
		slog.Int("bindings", len(reg.Names())),
	)
	return app, nil
}

// RegisterProvider adds a Provider to the application.
func (a *Application) RegisterProvider(p container.Provider) error {
	if err := a.Providers.Register(p); err != nil {
		return fmt.Errorf("register provider %T: %w", p, err)
	}
	return nil
}

// Config resolves *config.Config from the registry.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Registry, "config")
}

// Logger resolves *slog.Logger from the registry.
func (a *Application) Logger() *slog.Logger {
	return container.MustResolve[*slog.Logger](a.Registry, "logger")
}

// Router resolves *routing.Router from the registry.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Registry, "router")
}

// Run serves the router on APP_PORT until ctx is cancelled, then shuts the
// server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("app", cfg.App.Name),
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.App.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
