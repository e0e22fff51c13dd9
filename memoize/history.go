package memoize

// History returns the bounded-history strategy: the last maxSize argument
// tuples (default 1) are remembered, and a stored result is replayed when an
// incoming tuple is pairwise equal to one of them.
func History() Memoizer { return historyMemoizer{} }

type historyMemoizer struct{}

func (historyMemoizer) Memoize(fn Func, opts ...Option) Memoized {
	return NewHistory(fn, opts...)
}

type historyEntry struct {
	args   []any
	result any
}

// HistoryFn is a Func memoized over its recent call history.
// It is safe only in a single goroutine – NEVER share across goroutines
// without external synchronization.
type HistoryFn struct {
	fn             Func
	equality       EqualityFn
	resultEquality EqualityFn
	maxSize        int
	entries        []*historyEntry // most recent first
}

// NewHistory wraps fn with a bounded-history cache. See History.
func NewHistory(fn Func, opts ...Option) *HistoryFn {
	cfg := newConfig(opts)
	return &HistoryFn{
		fn:             fn,
		equality:       cfg.equality,
		resultEquality: cfg.resultEquality,
		maxSize:        cfg.maxSize,
	}
}

// Call scans the history most-recent-first, promotes a matching entry and
// replays its result. On a miss it invokes the wrapped function, inserts the
// new entry and evicts the least recently used one past maxSize.
func (m *HistoryFn) Call(args ...any) any {
	for i, e := range m.entries {
		if !tupleEqual(m.equality, e.args, args) {
			continue
		}
		if i != 0 {
			copy(m.entries[1:i+1], m.entries[:i])
			m.entries[0] = e
		}
		return e.result
	}

	result := m.fn(args...)
	if m.resultEquality != nil {
		// A recomputation that lands on an equal value keeps the old
		// result object so downstream identity checks stay stable.
		// The scan covers every entry, not just the most recent one.
		for _, e := range m.entries {
			if m.resultEquality(e.result, result) {
				result = e.result
				break
			}
		}
	}

	stored := make([]any, len(args))
	copy(stored, args)
	m.entries = append([]*historyEntry{{args: stored, result: result}}, m.entries...)
	if len(m.entries) > m.maxSize {
		m.entries = m.entries[:m.maxSize]
	}
	return result
}

// ClearCache empties the history, forcing full recomputation on the next
// call.
func (m *HistoryFn) ClearCache() {
	m.entries = nil
}
