package container

import (
	"fmt"
	"reflect"
	"sync"
)

// ── Provider interface ────────────────────────────────────────────────────────

// Provider groups related registrations.
//
// Register must only bind; resolving names that a deferred provider is still
// loading blocks forever.
//
//	type MailProvider struct{}
//
//	func (p *MailProvider) Register(r *container.Registry) error {
//	    r.Singleton("mailer", func(r *container.Registry) any {
//	        return mail.New(container.MustResolve[*config.Config](r, "config"))
//	    })
//	    return nil
//	}
type Provider interface {
	Register(r *Registry) error
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(r *Registry) error

// Register implements Provider.
func (f ProviderFunc) Register(r *Registry) error { return f(r) }

// DeferredProvider is a Provider whose Register runs only when one of the
// names it Provides is first resolved.
type DeferredProvider interface {
	Provider

	// Provides lists the names the provider binds.
	Provides() []string
}

// ── Deferred placeholders ─────────────────────────────────────────────────────

type deferredLoader struct {
	once     sync.Once
	err      error
	provider DeferredProvider
}

func (l *deferredLoader) load(r *Registry) error {
	l.once.Do(func() { l.err = l.provider.Register(r) })
	return l.err
}

// placeholder stands in for a name until its provider is loaded.
type placeholder struct {
	name   string
	loader *deferredLoader
}

func (p placeholder) create(r *Registry) any {
	if err := p.loader.load(r); err != nil {
		panic(fmt.Errorf("container: deferred provider for %q: %w", p.name, err))
	}

	r.mu.RLock()
	_, still := r.bindings[p.name].(placeholder)
	r.mu.RUnlock()
	if still {
		panic(&UndefinedKeyError{Name: p.name})
	}
	return r.MustGet(p.name)
}

// ── ProviderSet ───────────────────────────────────────────────────────────────

// ProviderSet registers providers into one registry, each at most once.
type ProviderSet struct {
	registry   *Registry
	eager      []Provider
	registered map[Provider]bool
}

// NewProviderSet creates a set bound to r.
func NewProviderSet(r *Registry) *ProviderSet {
	return &ProviderSet{
		registry:   r,
		registered: make(map[Provider]bool),
	}
}

// Register runs p.Register against the registry, or installs placeholders
// when p is a DeferredProvider. Registering the same comparable provider
// (typically a pointer) twice is a no-op.
func (s *ProviderSet) Register(p Provider) error {
	if p == nil {
		return ErrNilProvider
	}
	if reflect.TypeOf(p).Comparable() {
		if s.registered[p] {
			return nil
		}
		s.registered[p] = true
	}

	if d, ok := p.(DeferredProvider); ok {
		loader := &deferredLoader{provider: d}
		for _, name := range d.Provides() {
			s.registry.Register(name, placeholder{name: name, loader: loader})
		}
		return nil
	}

	if err := p.Register(s.registry); err != nil {
		return err
	}
	s.eager = append(s.eager, p)
	return nil
}

// Providers returns the eager providers in registration order.
func (s *ProviderSet) Providers() []Provider { return s.eager }
