package selectors

// TypedSelector adapts an OutputSelector to a typed single-state call
// signature. It embeds the selector so counters and cache controls stay
// available on the typed value.
type TypedSelector[S, R any] struct {
	*OutputSelector
}

// Select runs the selector against state.
func (s TypedSelector[S, R]) Select(state S) R {
	return s.Call(state).(R)
}

// New1 composes one typed input selector with a combiner.
// The typed constructors panic on misconfiguration; use New for an error
// return.
func New1[S, R1, R any](
	in1 func(S) R1,
	combine func(R1) R,
	opts ...Option,
) TypedSelector[S, R] {
	mustFuncs(in1 == nil, combine == nil)
	sel := MustNew(
		[]Func{
			func(args ...any) any { return in1(args[0].(S)) },
		},
		func(results ...any) any {
			return combine(results[0].(R1))
		},
		opts...,
	)
	return TypedSelector[S, R]{sel}
}

// New2 composes two typed input selectors with a combiner.
func New2[S, R1, R2, R any](
	in1 func(S) R1,
	in2 func(S) R2,
	combine func(R1, R2) R,
	opts ...Option,
) TypedSelector[S, R] {
	mustFuncs(in1 == nil || in2 == nil, combine == nil)
	sel := MustNew(
		[]Func{
			func(args ...any) any { return in1(args[0].(S)) },
			func(args ...any) any { return in2(args[0].(S)) },
		},
		func(results ...any) any {
			return combine(results[0].(R1), results[1].(R2))
		},
		opts...,
	)
	return TypedSelector[S, R]{sel}
}

// New3 composes three typed input selectors with a combiner.
func New3[S, R1, R2, R3, R any](
	in1 func(S) R1,
	in2 func(S) R2,
	in3 func(S) R3,
	combine func(R1, R2, R3) R,
	opts ...Option,
) TypedSelector[S, R] {
	mustFuncs(in1 == nil || in2 == nil || in3 == nil, combine == nil)
	sel := MustNew(
		[]Func{
			func(args ...any) any { return in1(args[0].(S)) },
			func(args ...any) any { return in2(args[0].(S)) },
			func(args ...any) any { return in3(args[0].(S)) },
		},
		func(results ...any) any {
			return combine(results[0].(R1), results[1].(R2), results[2].(R3))
		},
		opts...,
	)
	return TypedSelector[S, R]{sel}
}

// New4 composes four typed input selectors with a combiner.
func New4[S, R1, R2, R3, R4, R any](
	in1 func(S) R1,
	in2 func(S) R2,
	in3 func(S) R3,
	in4 func(S) R4,
	combine func(R1, R2, R3, R4) R,
	opts ...Option,
) TypedSelector[S, R] {
	mustFuncs(in1 == nil || in2 == nil || in3 == nil || in4 == nil, combine == nil)
	sel := MustNew(
		[]Func{
			func(args ...any) any { return in1(args[0].(S)) },
			func(args ...any) any { return in2(args[0].(S)) },
			func(args ...any) any { return in3(args[0].(S)) },
			func(args ...any) any { return in4(args[0].(S)) },
		},
		func(results ...any) any {
			return combine(results[0].(R1), results[1].(R2), results[2].(R3), results[3].(R4))
		},
		opts...,
	)
	return TypedSelector[S, R]{sel}
}

func mustFuncs(nilInput, nilCombiner bool) {
	if nilInput {
		panic(ErrInvalidDependencies)
	}
	if nilCombiner {
		panic(ErrMissingCombiner)
	}
}
