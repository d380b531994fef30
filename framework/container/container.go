package container

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ── Bindings ──────────────────────────────────────────────────────────────────

// Binding is the value stored under a name. Use Literal (or Value) for
// plain values and Factory for values built on demand; the interface is
// sealed.
type Binding interface {
	create(r *Registry) any
}

// Literal is a binding returned unchanged on every resolution.
type Literal struct {
	Value any
}

func (l Literal) create(_ *Registry) any { return l.Value }

// Value wraps v as a Literal binding.
func Value(v any) Binding { return Literal{Value: v} }

// Factory builds a value from the registry that owns it.
//
//	r.Bind("mailer", func(r *container.Registry) any {
//	    return mail.New(container.MustResolve[*config.Config](r, "config"))
//	})
type Factory func(r *Registry) any

func (f Factory) create(r *Registry) any {
	if f == nil {
		return nil
	}
	return f(r)
}

// instance is a shared slot. A slot that exists but is not ready marks a
// shared name that has not been resolved yet.
type instance struct {
	value any
	ready bool
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry maps names to literal values or factories, with optional shared
// (singleton) semantics and tag-based grouping.
//
// It supports:
//   - Register / Instance / Bind / Singleton / Define
//   - Get / MustGet / Resolve (generic)
//   - Tags (Tagged, NewFromTag)
type Registry struct {
	mu sync.RWMutex

	id       string
	observer Observer

	// name → binding
	bindings map[string]Binding

	// name → shared slot (presence means "shared")
	shared map[string]*instance

	// tag → []name, in registration order
	tags map[string][]string
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithObserver installs fn to be notified after every Get.
func WithObserver(fn Observer) RegistryOption {
	return func(r *Registry) { r.observer = fn }
}

// New creates an empty registry.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		id:       uuid.NewString(),
		bindings: make(map[string]Binding),
		shared:   make(map[string]*instance),
		tags:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID returns the registry's unique identifier.
func (r *Registry) ID() string { return r.id }

// ── Registration ──────────────────────────────────────────────────────────────

// Register stores b under name, replacing any previous binding.
//
//	r.Register("pi", container.Value(3.14))
//	r.Register("clock", container.Factory(newClock), container.Shared(), container.Tags("infra"))
func (r *Registry) Register(name string, b Binding, opts ...Option) {
	if b == nil {
		b = Literal{}
	}
	o := parseOptions(opts)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[name] = b

	// An already populated slot survives re-registration.
	if o.Shared {
		if _, ok := r.shared[name]; !ok {
			r.shared[name] = &instance{}
		}
	}

	for _, tag := range o.Tags {
		r.tags[tag] = append(r.tags[tag], name)
	}
}

// Instance registers a literal value.
//
//	r.Instance("config", cfg, container.Tags("framework"))
func (r *Registry) Instance(name string, v any, opts ...Option) {
	r.Register(name, Literal{Value: v}, opts...)
}

// Bind registers a factory that runs on every Get.
func (r *Registry) Bind(name string, f Factory, opts ...Option) {
	r.Register(name, f, opts...)
}

// Singleton registers a factory whose result is cached after first resolution.
func (r *Registry) Singleton(name string, f Factory, opts ...Option) {
	r.Register(name, f, append([]Option{Shared()}, opts...)...)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves name. Shared names are built at most once and cached;
// everything else is built on every call.
//
// A factory that calls MustGet on an unknown name makes Get return that
// *UndefinedKeyError instead of panicking.
func (r *Registry) Get(name string) (v any, err error) {
	start := time.Now()

	r.mu.RLock()
	slot, shared := r.shared[name]
	cached := shared && slot.ready
	if cached {
		v = slot.value
	}
	r.mu.RUnlock()

	defer func() {
		r.notify(Resolution{
			Registry: r.id,
			Name:     name,
			Shared:   shared,
			Cached:   cached,
			Err:      err,
			Duration: time.Since(start),
		})
	}()

	if cached {
		return v, nil
	}

	v, err = r.create(name)
	if err != nil || !shared {
		return v, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent Get may have populated the slot while the factory ran.
	if slot.ready {
		return slot.value, nil
	}
	slot.value, slot.ready = v, true
	return v, nil
}

// MustGet is like Get but panics with the *UndefinedKeyError.
//
// It is meant for use inside factories:
//
//	r.Bind("repo", func(r *container.Registry) any {
//	    return repo.New(r.MustGet("db").(*sql.DB))
//	})
func (r *Registry) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// create runs the binding for name without touching the shared cache.
func (r *Registry) create(name string) (v any, err error) {
	r.mu.RLock()
	b, ok := r.bindings[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &UndefinedKeyError{Name: name}
	}

	defer func() {
		if rec := recover(); rec != nil {
			undefined, ok := rec.(*UndefinedKeyError)
			if !ok {
				panic(rec)
			}
			v, err = nil, undefined
		}
	}()

	return b.create(r), nil
}

func (r *Registry) notify(res Resolution) {
	if r.observer != nil {
		r.observer(res)
	}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tagged returns the names registered under tag in registration order.
// The returned slice is a copy; it is empty (not nil) for an unknown tag.
func (r *Registry) Tagged(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := r.tags[tag]
	if len(names) == 0 {
		return []string{}
	}
	return slices.Clone(names)
}

// NewFromTag derives a registry holding a frozen snapshot of every name
// under tag. Each name is resolved once through Get and stored as a plain
// literal: factories are not copied and tags or shared markers are dropped.
//
//	workers, err := r.NewFromTag("workers")
func (r *Registry) NewFromTag(tag string) (*Registry, error) {
	derived := New(WithObserver(r.observer))

	for _, name := range r.Tagged(tag) {
		v, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		derived.Register(name, Literal{Value: v})
	}
	return derived, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether name has a binding.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bindings[name]
	return ok
}

// IsShared reports whether name was registered with Shared.
func (r *Registry) IsShared(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.shared[name]
	return ok
}

// Resolved reports whether the shared slot for name holds an instance.
func (r *Registry) Resolved(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.shared[name]
	return ok && slot.ready
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TagNames returns every tag in use, sorted.
func (r *Registry) TagNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: v, _ := r.Get("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](r, "db")
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T
	v, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &WrongTypeError{
			Name: name,
			Got:  fmt.Sprintf("%T", v),
			Want: reflect.TypeOf((*T)(nil)).Elem().String(),
		}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r *Registry, name string) T {
	v, err := Resolve[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}
