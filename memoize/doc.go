// Package memoize provides the caching strategies behind select_ive_go.
//
// Memoization is not just a utility to skip work.
// Memoization is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "What does 'the same input' actually mean here?"
//
// Every strategy in this package wraps a variadic Func and answers that
// second question differently:
//
//   - History: the last maxSize argument tuples, compared with a pluggable
//     EqualityFn (identity by default). The common maxSize of 1 degenerates
//     to "recompute iff the arguments differ from the last call".
//   - WeakTree: a per-argument tree keyed on identity, unbounded in count;
//     entries are reclaimed by the garbage collector once their arguments
//     become unreachable.
//   - TrackedAccess: the wrapped function receives accessors instead of raw
//     object arguments, and only the paths it actually read can invalidate
//     the single cached result.
//   - Hashed: argument tuples serialized to a stable key and hashed with
//     xxhash, matching structurally equal tuples rather than identical ones.
//   - Cached: a sturdyc-backed shared cache with capacity, shards and TTL,
//     for expensive functions that outlive single-call-site memoization.
//
// All strategies implement the Memoizer capability interface, so the
// selectors package can swap them into either layer of its cascading
// protocol without knowing which one it got.
//
// WARNING: Do not memoize impure functions (those depending on time, I/O,
// or mutable globals). A cache hit must be indistinguishable from a call.
package memoize
