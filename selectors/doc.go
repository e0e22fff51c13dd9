// Package selectors composes extraction functions into memoized derived
// views over a shared argument, typically an application state value.
//
// # What is a selector?
//
// An input selector extracts one value from the call arguments. A combiner
// receives all input results positionally and produces the derived value.
// The output selector built by New wires them together behind two
// independent caches:
//
//   - an outer cache over the raw call arguments, which skips even the
//     input selectors when the arguments are unchanged, and
//   - an inner cache over the extracted input results, which skips the
//     combiner when the arguments changed but the inputs did not.
//
// This cascading protocol is what makes cheap input selectors and an
// expensive combiner a good division of labor: the combiner is the single
// source of truth for the derived value and never sees the raw arguments.
//
// Both layers accept any memoize.Memoizer, so the caching policy of either
// layer can be swapped without touching the selector logic.
//
// # Dev-mode checks
//
// Two advisory diagnostics catch common authoring mistakes: input selectors
// that return fresh values for identical arguments (memoization can never
// hit), and combiners that return an input unchanged (the transformation
// lives in the wrong place). They log warnings through zap, never alter
// results, default to firing on a selector's first call only, and compile
// out entirely under the no_dev_checks build tag.
//
// Example:
//
//	type state struct{ Todos []todo }
//
//	doneTodos := selectors.New1(
//		func(s state) []todo { return s.Todos },
//		func(todos []todo) []todo {
//			done := make([]todo, 0, len(todos))
//			for _, t := range todos {
//				if t.Done {
//					done = append(done, t)
//				}
//			}
//			return done
//		},
//	)
//	_ = doneTodos.Select(appState)
package selectors
