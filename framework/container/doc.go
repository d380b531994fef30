// Package container provides a small name-keyed dependency registry.
//
// # Overview
//
// A Registry maps logical names to bindings. A binding is either a Literal
// (returned as-is) or a Factory (called with the registry on every
// resolution). Names can be marked shared, which caches the first
// resolution, and grouped under tags.
//
// There is no reflection-based injection: factories receive the registry
// and pull what they need from it.
//
// # Bindings
//
//	r := container.New()
//
//	// Literal
//	r.Register("pi", container.Value(3.14))
//	r.Instance("config", cfg)
//
//	// Factory: new value every Get
//	r.Bind("request-id", func(r *container.Registry) any { return uuid.NewString() })
//
//	// Shared: built once on first Get, then reused
//	r.Singleton("db", func(r *container.Registry) any {
//	    return openDB(container.MustResolve[*config.Config](r, "config"))
//	})
//
//	// Fluent
//	r.Define("cache").Shared().Tagged("infra").Using(newCache)
//
// Registering a name again replaces its binding. A shared instance that has
// already been built is kept.
//
// # Resolving
//
//	v, err := r.Get("db")            // any, *UndefinedKeyError if unknown
//	db, err := container.Resolve[*sql.DB](r, "db")
//	db := r.MustGet("db").(*sql.DB) // panics; use inside factories
//
// Inside a factory, MustGet on an unknown name surfaces as an error from the
// outermost Get rather than as a panic.
//
// # Tags
//
//	r.Register("two", container.Value(2), container.Tags("prime", "even"))
//	r.Register("three", container.Value(3), container.Tags("prime", "odd"))
//
//	r.Tagged("prime") // []string{"two", "three"}
//
//	primes, err := r.NewFromTag("prime")
//
// NewFromTag resolves every tagged name once and stores the results as
// literals in a fresh registry. Factories, tags and shared markers are not
// carried over.
//
// # Providers
//
//	set := container.NewProviderSet(r)
//	set.Register(&MailProvider{})
//
// A DeferredProvider only runs its Register when one of the names returned
// by Provides is first resolved.
//
// # Concurrency
//
// The internal maps are guarded by a mutex. Factories run unlocked so they
// can resolve other names; two goroutines racing on the first resolution of
// a shared name may both run its factory, but both receive the instance that
// was stored first. There is no cycle detection.
package container
