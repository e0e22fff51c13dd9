package memoize

// Func is the variadic form every memoization strategy operates on.
// Typed call surfaces are layered on top of it by the selectors package.
type Func func(args ...any) any

// Memoized is a memoizing wrapper around a Func.
type Memoized interface {
	// Call invokes the wrapped function, or replays a cached result.
	Call(args ...any) any
	// ClearCache drops every cache entry, forcing recomputation on the
	// next call.
	ClearCache()
}

// Memoizer builds Memoized wrappers. Each strategy in this package
// implements it so callers can swap caching policies without touching call
// sites.
type Memoizer interface {
	Memoize(fn Func, opts ...Option) Memoized
}

type config struct {
	equality       EqualityFn
	resultEquality EqualityFn
	maxSize        int
	serializer     KeySerializer
}

func newConfig(opts []Option) config {
	cfg := config{
		equality:   Identical,
		maxSize:    1,
		serializer: NewDefaultKeySerializer(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option tunes a strategy. Strategies ignore options they have no use for.
type Option func(*config)

// WithEqualityFn replaces the per-argument equality used by History.
func WithEqualityFn(eq EqualityFn) Option {
	return func(cfg *config) {
		cfg.equality = eq
	}
}

// WithResultEqualityFn makes History compare a freshly computed result
// against the cached ones and keep the old value when they are equal. Useful
// for functions that build new-but-equivalent values, e.g. mapping to a
// derived slice that rarely actually changes.
func WithResultEqualityFn(eq EqualityFn) Option {
	return func(cfg *config) {
		cfg.resultEquality = eq
	}
}

// WithMaxSize sets how many argument tuples History retains.
func WithMaxSize(n int) Option {
	if n < 1 {
		panic("maxSize should be greater than 0")
	}
	return func(cfg *config) {
		cfg.maxSize = n
	}
}

// WithKeySerializer replaces the argument serializer used by the Hashed and
// Cached strategies.
func WithKeySerializer(serializer KeySerializer) Option {
	return func(cfg *config) {
		cfg.serializer = serializer
	}
}

// EqualityOf resolves the EqualityFn carried by opts, defaulting to
// Identical. The selectors package uses it to align its dev-mode checks with
// the combiner memoizer's equality semantics.
func EqualityOf(opts ...Option) EqualityFn {
	return newConfig(opts).equality
}
