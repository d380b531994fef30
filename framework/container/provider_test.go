package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-pore/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	calls int
}

func (p *eagerProvider) Register(r *container.Registry) error {
	p.calls++
	r.Singleton("eager-svc", func(*container.Registry) any { return "eager" })
	return nil
}

// deferredProvider is lazy: it only registers when "deferred-svc" is first resolved.
type deferredProvider struct {
	calls int
	skip  bool
}

func (p *deferredProvider) Register(r *container.Registry) error {
	p.calls++
	if !p.skip {
		r.Singleton("deferred-svc", func(*container.Registry) any { return &widget{id: 9} })
	}
	r.Instance("deferred-extra", "extra")
	return nil
}

func (p *deferredProvider) Provides() []string {
	return []string{"deferred-svc", "deferred-extra"}
}

type failingProvider struct{ err error }

func (p failingProvider) Register(*container.Registry) error { return p.err }

type failingDeferred struct{ failingProvider }

func (p failingDeferred) Provides() []string { return []string{"never"} }

// ── ProviderSet ───────────────────────────────────────────────────────────────

func TestProviderSet_EagerProvider_RegisterCalled(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)

	p := &eagerProvider{}
	require.NoError(t, set.Register(p))

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "eager", r.MustGet("eager-svc"))
}

func TestProviderSet_DuplicateRegister_Ignored(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)

	p := &eagerProvider{}
	require.NoError(t, set.Register(p))
	require.NoError(t, set.Register(p))

	assert.Equal(t, 1, p.calls)
	assert.Len(t, set.Providers(), 1)
}

func TestProviderSet_ProviderFunc(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)

	fn := container.ProviderFunc(func(r *container.Registry) error {
		r.Instance("from-func", true)
		return nil
	})
	require.NoError(t, set.Register(fn))

	assert.Equal(t, true, r.MustGet("from-func"))
}

func TestProviderSet_PropagatesRegisterError(t *testing.T) {
	set := container.NewProviderSet(container.New())
	boom := errors.New("boom")

	err := set.Register(failingProvider{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, set.Providers())
}

func TestProviderSet_NilProvider(t *testing.T) {
	set := container.NewProviderSet(container.New())
	assert.ErrorIs(t, set.Register(nil), container.ErrNilProvider)
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestProviderSet_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)

	p := &deferredProvider{}
	require.NoError(t, set.Register(p))

	assert.Equal(t, 0, p.calls)
	assert.True(t, r.Has("deferred-svc"))
	assert.Empty(t, set.Providers(), "deferred providers are not listed")
}

func TestProviderSet_DeferredProvider_RegisteredOnFirstGet(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)

	p := &deferredProvider{}
	require.NoError(t, set.Register(p))

	first := r.MustGet("deferred-svc")
	assert.Equal(t, 9, first.(*widget).id)
	assert.Same(t, first, r.MustGet("deferred-svc"))
	assert.Equal(t, "extra", r.MustGet("deferred-extra"))
	assert.Equal(t, 1, p.calls)
}

func TestProviderSet_DeferredProvider_MissingBindingIsUndefined(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)
	require.NoError(t, set.Register(&deferredProvider{skip: true}))

	_, err := r.Get("deferred-svc")
	assert.ErrorIs(t, err, container.ErrUndefinedKey)

	// The sibling name was bound by the same load.
	assert.Equal(t, "extra", r.MustGet("deferred-extra"))
}

func TestProviderSet_DeferredProvider_LoadErrorPanics(t *testing.T) {
	r := container.New()
	set := container.NewProviderSet(r)
	require.NoError(t, set.Register(failingDeferred{failingProvider{err: errors.New("nope")}}))

	assert.Panics(t, func() { _, _ = r.Get("never") })
}
