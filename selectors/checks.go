package selectors

import (
	"go.uber.org/zap"

	"github.com/on-the-ground/select_ive_go/memoize"
)

// checkInputStability re-runs every input selector against the same
// arguments and warns when any result differs under the combiner memoizer's
// equality. Such a selector defeats memoization: every call recomputes.
// Advisory only; the first results are the ones used.
func (s *OutputSelector) checkInputStability(args, results []any) {
	if !s.stabilityFrequency().shouldRun(s.primed) {
		return
	}
	for i, dep := range s.dependencies {
		again := dep(args...)
		if s.checkEquality(results[i], again) {
			continue
		}
		diagnosticLogger().Warn(
			"input selector returned a new result for identical arguments; memoization will never hit",
			zap.String("selector_id", s.id),
			zap.Int("input_index", i),
			zap.Any("first_result", results[i]),
			zap.Any("second_result", again),
		)
	}
}

// checkIdentityFunction warns when the combiner handed back one of its
// inputs unchanged: the extraction then belongs in an input selector, and
// the combiner-level cache buys nothing. Advisory only.
func (s *OutputSelector) checkIdentityFunction(results []any, result any) {
	if !s.identityFrequency().shouldRun(s.primed) {
		return
	}
	for i, in := range results {
		if memoize.Identical(in, result) {
			diagnosticLogger().Warn(
				"combiner returned an input unchanged; move the extraction into an input selector",
				zap.String("selector_id", s.id),
				zap.Int("input_index", i),
			)
			return
		}
	}
}

func (s *OutputSelector) stabilityFrequency() CheckFrequency {
	if s.stability != nil {
		return *s.stability
	}
	return globalDevModeChecks().InputStabilityCheck
}

func (s *OutputSelector) identityFrequency() CheckFrequency {
	if s.identityFn != nil {
		return *s.identityFn
	}
	return globalDevModeChecks().IdentityFunctionCheck
}
