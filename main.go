package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/km-arc/go-pore/framework/app"
	"github.com/km-arc/go-pore/framework/container"
)

// Greeter is a demo service resolved from the registry.
type Greeter struct {
	AppName string
}

func (g *Greeter) Greet(name string) string {
	return fmt.Sprintf("Hello %s, from %s", name, g.AppName)
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := application.Logger()

	// ── Literals ─────────────────────────────────────────────────────────────

	application.Instance("pi", 3.14, container.Tags("math"))
	application.Register("two", container.Value(2), container.Tags("prime", "even"))
	application.Register("three", container.Value(3), container.Tags("prime", "odd"))
	application.Register("four", container.Value(4), container.Tags("even"))

	// ── Factories ────────────────────────────────────────────────────────────

	// New value on every Get: GET /registry/bindings/request-id changes each time.
	application.Bind("request-id", func(*container.Registry) any {
		return uuid.NewString()
	})

	application.Define("greeter").Shared().Tagged("services").Using(func(r *container.Registry) any {
		return &Greeter{AppName: container.MustResolve[string](r, "app.name")}
	})

	greeter := container.MustResolve[*Greeter](application.Registry, "greeter")
	logger.Info(greeter.Greet("world"))

	// ── Derived registry ─────────────────────────────────────────────────────

	primes, err := application.NewFromTag("prime")
	if err != nil {
		logger.Error("derive registry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("derived registry",
		slog.String("tag", "prime"),
		slog.String("registry", primes.ID()),
		slog.Any("names", primes.Names()),
	)

	// ── Serve the inspector ──────────────────────────────────────────────────

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
