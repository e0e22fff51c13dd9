package selectors

import (
	"sync"

	"go.uber.org/zap"
)

// CheckFrequency controls how often a dev-mode check runs for a selector.
type CheckFrequency string

const (
	// CheckOnce runs the check on a selector's first call only. The
	// default for both checks.
	CheckOnce CheckFrequency = "once"

	// CheckAlways runs the check on every call.
	CheckAlways CheckFrequency = "always"

	// CheckNever disables the check.
	CheckNever CheckFrequency = "never"
)

func (f CheckFrequency) shouldRun(primed bool) bool {
	switch f {
	case CheckAlways:
		return true
	case CheckOnce:
		return !primed
	default:
		return false
	}
}

// DevModeChecks carries the two advisory check frequencies. Zero-valued
// fields leave the corresponding setting untouched.
type DevModeChecks struct {
	InputStabilityCheck   CheckFrequency
	IdentityFunctionCheck CheckFrequency
}

var (
	globalChecksMu sync.RWMutex
	globalChecks   = DevModeChecks{
		InputStabilityCheck:   CheckOnce,
		IdentityFunctionCheck: CheckOnce,
	}
)

// SetGlobalDevModeChecks overrides the process-wide dev-mode check
// frequencies. The setting is read at call time, so selectors built earlier
// without per-selector overrides pick the change up immediately.
func SetGlobalDevModeChecks(checks DevModeChecks) {
	globalChecksMu.Lock()
	defer globalChecksMu.Unlock()
	if checks.InputStabilityCheck != "" {
		globalChecks.InputStabilityCheck = checks.InputStabilityCheck
	}
	if checks.IdentityFunctionCheck != "" {
		globalChecks.IdentityFunctionCheck = checks.IdentityFunctionCheck
	}
}

func globalDevModeChecks() DevModeChecks {
	globalChecksMu.RLock()
	defer globalChecksMu.RUnlock()
	return globalChecks
}

var (
	loggerMu sync.RWMutex
	diagLog  *zap.Logger
)

// SetLogger routes advisory diagnostics to l instead of the global zap
// logger. Pass nil to restore the default.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	diagLog = l
}

func diagnosticLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if diagLog != nil {
		return diagLog
	}
	return zap.L()
}
