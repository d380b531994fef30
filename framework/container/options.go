package container

// Options are the recognized registration settings.
type Options struct {
	// Shared caches the first resolution and returns it on every later Get.
	Shared bool

	// Tags lists the groups the name is appended to.
	Tags []string
}

// Option mutates Options during Register.
type Option func(*Options)

// Shared marks the name as a singleton.
func Shared() Option {
	return func(o *Options) { o.Shared = true }
}

// Tags appends the name to each tag's sequence.
func Tags(tags ...string) Option {
	return func(o *Options) { o.Tags = append(o.Tags, tags...) }
}

// WithOptions applies a prepared Options value, e.g. one decoded from a
// manifest.
func WithOptions(src Options) Option {
	return func(o *Options) {
		o.Shared = o.Shared || src.Shared
		o.Tags = append(o.Tags, src.Tags...)
	}
}

func parseOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
