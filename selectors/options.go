package selectors

import "github.com/on-the-ground/select_ive_go/memoize"

type options struct {
	memoizer        memoize.Memoizer
	memoizeOpts     []memoize.Option
	argsMemoizer    memoize.Memoizer
	argsMemoizeOpts []memoize.Option
	stability       *CheckFrequency
	identityFn      *CheckFrequency
	creator         Creator
}

func newOptions(opts []Option) options {
	cfg := options{
		memoizer:     memoize.History(),
		argsMemoizer: memoize.History(),
		creator:      New,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option tunes the composition performed by New and NewStructured.
type Option func(*options)

// WithMemoizer replaces the combiner memoization strategy.
func WithMemoizer(m memoize.Memoizer) Option {
	return func(cfg *options) {
		cfg.memoizer = m
	}
}

// WithMemoizeOptions passes strategy options to the combiner memoizer.
func WithMemoizeOptions(opts ...memoize.Option) Option {
	return func(cfg *options) {
		cfg.memoizeOpts = opts
	}
}

// WithArgsMemoizer replaces the strategy of the outer cache over the raw
// call arguments.
func WithArgsMemoizer(m memoize.Memoizer) Option {
	return func(cfg *options) {
		cfg.argsMemoizer = m
	}
}

// WithArgsMemoizeOptions passes strategy options to the args memoizer.
func WithArgsMemoizeOptions(opts ...memoize.Option) Option {
	return func(cfg *options) {
		cfg.argsMemoizeOpts = opts
	}
}

// WithInputStabilityCheck overrides the global input-stability check
// frequency for this selector.
func WithInputStabilityCheck(freq CheckFrequency) Option {
	return func(cfg *options) {
		cfg.stability = &freq
	}
}

// WithIdentityFunctionCheck overrides the global identity-function check
// frequency for this selector.
func WithIdentityFunctionCheck(freq CheckFrequency) Option {
	return func(cfg *options) {
		cfg.identityFn = &freq
	}
}

// WithCreator makes NewStructured delegate composition to an alternate
// Creator, typically one built by NewCreator. New itself ignores it.
func WithCreator(c Creator) Option {
	return func(cfg *options) {
		cfg.creator = c
	}
}
