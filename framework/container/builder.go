package container

// DefinitionBuilder implements the fluent registration API.
//
//	r.Define("cache").Shared().Tagged("infra").Using(func(r *container.Registry) any {
//	    return cache.New()
//	})
type DefinitionBuilder struct {
	registry *Registry
	name     string
	opts     Options
}

// Define starts a fluent registration for name. Nothing is stored until As
// or Using is called.
func (r *Registry) Define(name string) *DefinitionBuilder {
	return &DefinitionBuilder{registry: r, name: name}
}

// Shared marks the definition as a singleton.
func (b *DefinitionBuilder) Shared() *DefinitionBuilder {
	b.opts.Shared = true
	return b
}

// Tagged appends tags to the definition.
func (b *DefinitionBuilder) Tagged(tags ...string) *DefinitionBuilder {
	b.opts.Tags = append(b.opts.Tags, tags...)
	return b
}

// Using registers f as the definition's factory.
func (b *DefinitionBuilder) Using(f Factory) {
	b.registry.Register(b.name, f, WithOptions(b.opts))
}

// As registers v as the definition's literal value.
//
//	r.Define("storagePath").Tagged("paths").As("/tmp/photos")
func (b *DefinitionBuilder) As(v any) {
	b.registry.Register(b.name, Literal{Value: v}, WithOptions(b.opts))
}
