package selectors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/on-the-ground/select_ive_go/memoize"
)

// Func is re-exported so callers composing untyped selectors do not need to
// import memoize for the signature alone.
type Func = memoize.Func

var (
	// ErrInvalidDependencies is returned when the input selector list is
	// empty or contains a nil entry.
	ErrInvalidDependencies = errors.New("selectors: input selectors must be non-nil functions")

	// ErrMissingCombiner is returned when no combiner is supplied.
	ErrMissingCombiner = errors.New("selectors: combiner is required")

	// ErrInvalidSelectorMap is returned by NewStructured for a nil or
	// empty selector map, or one containing a nil selector.
	ErrInvalidSelectorMap = errors.New("selectors: selector map must be a non-empty map of non-nil selectors")
)

// OutputSelector is the composed, memoized selector produced by New.
//
// It is safe only in a single goroutine – NEVER share across goroutines
// without external synchronization: cache reads and writes are not atomic
// with respect to each other.
type OutputSelector struct {
	id                 string
	resultFunc         Func
	memoizedResultFunc memoize.Memoized
	argsMemoized       memoize.Memoized
	dependencies       []Func

	lastResult               any
	primed                   bool
	recomputations           int
	dependencyRecomputations int

	checkEquality memoize.EqualityFn
	stability     *CheckFrequency
	identityFn    *CheckFrequency
}

// Creator is a New-equivalent parametrized by an alternate combiner
// memoizer. See NewCreator.
type Creator func(inputs []Func, combiner Func, opts ...Option) (*OutputSelector, error)

// New composes input selectors and a combiner into an output selector.
//
// The combiner is invoked with exactly the positional results of the input
// selectors, in declared order. Both memoization layers default to the
// bounded-history strategy with identity equality and size 1. Errors raised
// by input selectors or the combiner during calls propagate unmodified; New
// itself fails only on construction-time misconfiguration.
func New(inputs []Func, combiner Func, opts ...Option) (*OutputSelector, error) {
	if combiner == nil {
		return nil, fmt.Errorf("%w: got %T", ErrMissingCombiner, combiner)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: got none", ErrInvalidDependencies)
	}
	for i, dep := range inputs {
		if dep == nil {
			return nil, fmt.Errorf("%w: dependency %d is %T", ErrInvalidDependencies, i, dep)
		}
	}

	cfg := newOptions(opts)
	s := &OutputSelector{
		id:            uuid.NewString(),
		resultFunc:    combiner,
		dependencies:  append([]Func(nil), inputs...),
		checkEquality: memoize.EqualityOf(cfg.memoizeOpts...),
		stability:     cfg.stability,
		identityFn:    cfg.identityFn,
	}
	s.memoizedResultFunc = cfg.memoizer.Memoize(func(results ...any) any {
		s.recomputations++
		return combiner(results...)
	}, cfg.memoizeOpts...)
	s.argsMemoized = cfg.argsMemoizer.Memoize(s.extractAndCombine, cfg.argsMemoizeOpts...)
	return s, nil
}

// MustNew is the panic-on-failure variant of New, for selectors wired at
// package init where a configuration error is a programming bug.
func MustNew(inputs []Func, combiner Func, opts ...Option) *OutputSelector {
	s, err := New(inputs, combiner, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewCreator binds memoizer and its options as the default combiner
// memoizer of the returned Creator. Explicit WithMemoizer options at call
// sites still win.
func NewCreator(memoizer memoize.Memoizer, memoizerOpts ...memoize.Option) Creator {
	return func(inputs []Func, combiner Func, opts ...Option) (*OutputSelector, error) {
		bound := make([]Option, 0, len(opts)+2)
		bound = append(bound, WithMemoizer(memoizer), WithMemoizeOptions(memoizerOpts...))
		bound = append(bound, opts...)
		return New(inputs, combiner, bound...)
	}
}

// Call runs the selector, passing the primary argument first and then any
// extra parameters the input selectors expect.
func (s *OutputSelector) Call(args ...any) any {
	result := s.argsMemoized.Call(args...)
	s.lastResult = result
	s.primed = true
	return result
}

// extractAndCombine is the dependency-execution step wrapped by the outer
// args memoizer.
func (s *OutputSelector) extractAndCombine(args ...any) any {
	s.dependencyRecomputations++
	results := make([]any, len(s.dependencies))
	for i, dep := range s.dependencies {
		results[i] = dep(args...)
	}
	if devChecksEnabled {
		s.checkInputStability(args, results)
	}
	result := s.memoizedResultFunc.Call(results...)
	if devChecksEnabled {
		s.checkIdentityFunction(results, result)
	}
	return result
}

// ID returns the instance id used in diagnostic log fields.
func (s *OutputSelector) ID() string { return s.id }

// ResultFunc returns the original combiner, unmodified. It is never invoked
// directly during normal operation; only MemoizedResultFunc is.
func (s *OutputSelector) ResultFunc() Func { return s.resultFunc }

// MemoizedResultFunc returns the combiner wrapped by the combiner memoizer.
func (s *OutputSelector) MemoizedResultFunc() memoize.Memoized { return s.memoizedResultFunc }

// Dependencies returns the input selectors in declared order, which is also
// the positional order their results reach the combiner.
func (s *OutputSelector) Dependencies() []Func {
	return append([]Func(nil), s.dependencies...)
}

// LastResult returns the most recently produced value, or nil before the
// first call.
func (s *OutputSelector) LastResult() any { return s.lastResult }

// Recomputations reports how many times the combiner has been invoked.
func (s *OutputSelector) Recomputations() int { return s.recomputations }

// ResetRecomputations resets the combiner invocation counter.
func (s *OutputSelector) ResetRecomputations() { s.recomputations = 0 }

// DependencyRecomputations reports how many times the input selector results
// were recomputed, i.e. how often the outer args cache missed.
func (s *OutputSelector) DependencyRecomputations() int { return s.dependencyRecomputations }

// ResetDependencyRecomputations resets the dependency recomputation counter.
func (s *OutputSelector) ResetDependencyRecomputations() { s.dependencyRecomputations = 0 }

// ClearCache empties both memoization layers, forcing the next call to
// recompute the input results and the combiner result.
func (s *OutputSelector) ClearCache() {
	s.argsMemoized.ClearCache()
	s.memoizedResultFunc.ClearCache()
}
