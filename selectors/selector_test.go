package selectors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/select_ive_go/memoize"
	"github.com/on-the-ground/select_ive_go/selectors"
)

type state struct {
	A int
	B int
	C int // never extracted
}

func TestSelector_MemoizesByState(t *testing.T) {
	sel := selectors.New1(
		func(s state) int { return s.A },
		func(a int) int { return a },
	)

	assert.Equal(t, 1, sel.Select(state{A: 1}))
	assert.Equal(t, 1, sel.Select(state{A: 1}))
	assert.Equal(t, 1, sel.Recomputations())

	assert.Equal(t, 2, sel.Select(state{A: 2}))
	assert.Equal(t, 2, sel.Recomputations())
}

func TestSelector_CascadingSkip(t *testing.T) {
	sel := selectors.New2(
		func(s state) int { return s.A },
		func(s state) int { return s.B },
		func(a, b int) int { return a + b },
	)

	assert.Equal(t, 3, sel.Select(state{A: 1, B: 2, C: 1}))
	assert.Equal(t, 1, sel.Recomputations())
	assert.Equal(t, 1, sel.DependencyRecomputations())

	// identical state: the outer args cache hits, inputs never re-run
	sel.Select(state{A: 1, B: 2, C: 1})
	assert.Equal(t, 1, sel.Recomputations())
	assert.Equal(t, 1, sel.DependencyRecomputations())

	// changed state, unchanged extracted inputs: the inputs re-run but
	// the combiner is skipped
	sel.Select(state{A: 1, B: 2, C: 9})
	assert.Equal(t, 1, sel.Recomputations())
	assert.Equal(t, 2, sel.DependencyRecomputations())

	// changed extracted input: the combiner runs again
	assert.Equal(t, 4, sel.Select(state{A: 2, B: 2, C: 9}))
	assert.Equal(t, 2, sel.Recomputations())
	assert.Equal(t, 3, sel.DependencyRecomputations())
}

func TestSelector_InstanceSurface(t *testing.T) {
	combiner := func(results ...any) any { return results[0].(int) + 1 }
	dep := func(args ...any) any { return args[0].(state).A }

	sel, err := selectors.New([]selectors.Func{dep}, combiner)
	require.NoError(t, err)

	assert.Nil(t, sel.LastResult())
	assert.Equal(t, 2, sel.Call(state{A: 1}))
	assert.Equal(t, 2, sel.LastResult())
	assert.Len(t, sel.Dependencies(), 1)
	assert.NotEmpty(t, sel.ID())

	// the original combiner is exposed unmemoized
	assert.Equal(t, 8, sel.ResultFunc()(7))

	sel.ResetRecomputations()
	sel.ResetDependencyRecomputations()
	assert.Equal(t, 0, sel.Recomputations())
	assert.Equal(t, 0, sel.DependencyRecomputations())
}

func TestSelector_ClearCache(t *testing.T) {
	sel := selectors.New1(
		func(s state) int { return s.A },
		func(a int) int { return a * 10 },
	)

	sel.Select(state{A: 1})
	sel.Select(state{A: 1})
	assert.Equal(t, 1, sel.Recomputations())
	assert.Equal(t, 1, sel.DependencyRecomputations())

	sel.ClearCache()
	sel.Select(state{A: 1})
	assert.Equal(t, 2, sel.Recomputations())
	assert.Equal(t, 2, sel.DependencyRecomputations())
}

func TestSelector_ConstructionErrors(t *testing.T) {
	dep := func(args ...any) any { return args[0] }
	combiner := func(results ...any) any { return results[0] }

	_, err := selectors.New([]selectors.Func{dep}, nil)
	assert.ErrorIs(t, err, selectors.ErrMissingCombiner)

	_, err = selectors.New(nil, combiner)
	assert.ErrorIs(t, err, selectors.ErrInvalidDependencies)

	_, err = selectors.New([]selectors.Func{dep, nil}, combiner)
	assert.ErrorIs(t, err, selectors.ErrInvalidDependencies)
	assert.Contains(t, err.Error(), "dependency 1")

	assert.Panics(t, func() {
		selectors.MustNew(nil, combiner)
	})
	assert.Panics(t, func() {
		selectors.New1[state, int, int](nil, func(a int) int { return a })
	})
}

func TestSelector_BoundedHistoryLayers(t *testing.T) {
	sel := selectors.New2(
		func(s state) int { return s.A },
		func(s state) int { return s.B },
		func(a, b int) int { return a*100 + b },
		selectors.WithMemoizeOptions(memoize.WithMaxSize(3)),
		selectors.WithArgsMemoizeOptions(memoize.WithMaxSize(3)),
	)

	s1 := state{A: 1, B: 1}
	s2 := state{A: 2, B: 2}
	s3 := state{A: 3, B: 3}

	sel.Select(s1)
	sel.Select(s2)
	sel.Select(s3)
	assert.Equal(t, 3, sel.Recomputations())

	// replaying any of the three argument sets is a pure cache hit
	sel.Select(s1)
	sel.Select(s2)
	sel.Select(s3)
	assert.Equal(t, 3, sel.Recomputations())
	assert.Equal(t, 3, sel.DependencyRecomputations())

	// a fourth distinct set evicts the least recently used entry, s1
	sel.Select(state{A: 4, B: 4})
	assert.Equal(t, 4, sel.Recomputations())
	sel.Select(s2)
	sel.Select(s3)
	assert.Equal(t, 4, sel.Recomputations())
	sel.Select(s1)
	assert.Equal(t, 5, sel.Recomputations())
}

func TestSelector_ExtraArguments(t *testing.T) {
	sel := selectors.MustNew(
		[]selectors.Func{
			func(args ...any) any { return args[0].(state).A },
			func(args ...any) any { return args[1].(int) },
		},
		func(results ...any) any { return results[0].(int) * results[1].(int) },
	)

	assert.Equal(t, 6, sel.Call(state{A: 2}, 3))
	assert.Equal(t, 6, sel.Call(state{A: 2}, 3))
	assert.Equal(t, 1, sel.Recomputations())

	assert.Equal(t, 8, sel.Call(state{A: 2}, 4))
	assert.Equal(t, 2, sel.Recomputations())
}

func TestNewCreator_BindsCombinerMemoizer(t *testing.T) {
	creator := selectors.NewCreator(memoize.WeakTree())

	sel, err := creator(
		[]selectors.Func{
			func(args ...any) any { return args[0].(state).A },
		},
		func(results ...any) any { return results[0].(int) + 1 },
	)
	require.NoError(t, err)

	assert.Equal(t, 2, sel.Call(state{A: 1}))
	assert.Equal(t, 1, sel.Recomputations())

	// different raw args, identical extracted input: the weak tree keyed
	// on the input value still hits
	assert.Equal(t, 2, sel.Call(state{A: 1, C: 5}))
	assert.Equal(t, 1, sel.Recomputations())
	assert.Equal(t, 2, sel.DependencyRecomputations())
}

func TestSelector_PropagatesPanicsUnwrapped(t *testing.T) {
	boom := func(results ...any) any { panic("combiner exploded") }
	sel := selectors.MustNew(
		[]selectors.Func{func(args ...any) any { return args[0] }},
		boom,
	)

	assert.PanicsWithValue(t, "combiner exploded", func() {
		sel.Call(state{A: 1})
	})
}
