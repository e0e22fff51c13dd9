package memoize

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Hashed returns the digest-keyed strategy: argument tuples are serialized
// to a stable key, hashed with xxhash, and results cached per digest without
// bound. Unlike the identity-based strategies it matches structurally equal
// tuples, so freshly built but equivalent arguments still hit.
func Hashed() Memoizer { return hashedMemoizer{} }

type hashedMemoizer struct{}

func (hashedMemoizer) Memoize(fn Func, opts ...Option) Memoized {
	return NewHashed(fn, opts...)
}

type hashedEntry struct {
	key    string
	result any
}

// HashedFn is a Func memoized under the xxhash digest of its serialized
// arguments. The full serialized key is kept alongside each entry, and
// entries under a colliding digest chain, so a collision costs a scan rather
// than a wrong result or an eviction.
type HashedFn struct {
	fn         Func
	serializer KeySerializer
	table      atomic.Pointer[sync.Map] // uint64 -> []hashedEntry
}

// NewHashed wraps fn with a digest-keyed cache. See Hashed.
func NewHashed(fn Func, opts ...Option) *HashedFn {
	cfg := newConfig(opts)
	m := &HashedFn{fn: fn, serializer: cfg.serializer}
	m.table.Store(&sync.Map{})
	return m
}

// Call replays the result stored under the digest of the serialized
// argument tuple, computing and storing it on a miss.
func (m *HashedFn) Call(args ...any) any {
	key := m.serializer.SerializeKey(args...)
	digest := xxhash.Sum64String(key)
	table := m.table.Load()
	var bucket []hashedEntry
	if v, ok := table.Load(digest); ok {
		bucket = v.([]hashedEntry)
		for _, e := range bucket {
			if e.key == key {
				return e.result
			}
		}
	}
	result := m.fn(args...)
	next := make([]hashedEntry, len(bucket)+1)
	copy(next, bucket)
	next[len(bucket)] = hashedEntry{key: key, result: result}
	table.Store(digest, next)
	return result
}

// ClearCache swaps in an empty table.
func (m *HashedFn) ClearCache() {
	m.table.Store(&sync.Map{})
}
