package selectors

import (
	"fmt"
	"sort"
)

// NewStructured composes a map of named selectors into one selector whose
// result is a map from those names to the corresponding input results.
//
// The result map is freshly built on every recomputation but
// reference-stable across cache hits: calls whose extracted values are
// unchanged return the exact same map. Keys are iterated in sorted order so
// the positional wiring underneath stays deterministic. All memoization
// behavior is delegated to the underlying composer, New by default or the
// one supplied via WithCreator.
func NewStructured(selectorMap map[string]Func, opts ...Option) (*OutputSelector, error) {
	if len(selectorMap) == 0 {
		return nil, fmt.Errorf("%w: got %T with %d entries", ErrInvalidSelectorMap, selectorMap, len(selectorMap))
	}
	keys := make([]string, 0, len(selectorMap))
	for key, dep := range selectorMap {
		if dep == nil {
			return nil, fmt.Errorf("%w: selector %q is %T", ErrInvalidSelectorMap, key, dep)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	inputs := make([]Func, len(keys))
	for i, key := range keys {
		inputs[i] = selectorMap[key]
	}
	combiner := func(results ...any) any {
		out := make(map[string]any, len(keys))
		for i, key := range keys {
			out[key] = results[i]
		}
		return out
	}

	return newOptions(opts).creator(inputs, combiner, opts...)
}

// MustNewStructured is the panic-on-failure variant of NewStructured.
func MustNewStructured(selectorMap map[string]Func, opts ...Option) *OutputSelector {
	s, err := NewStructured(selectorMap, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
