package memoize

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

// WeakTree returns the identity-keyed tree strategy. Equality is always
// strict identity and the cache is unbounded in entry count: an entry
// survives exactly as long as every pointer-shaped argument on its path
// remains reachable elsewhere, because the tree holds those arguments only
// weakly.
func WeakTree() Memoizer { return weakTreeMemoizer{} }

type weakTreeMemoizer struct{}

func (weakTreeMemoizer) Memoize(fn Func, _ ...Option) Memoized {
	return NewWeakTree(fn)
}

// treeNode is one level of the cache tree. Each level keys on one positional
// argument: pointer-shaped values go through the weak layer so the subtree
// dies with the argument, primitive comparable values go through an ordinary
// strong layer since they cannot be tracked weakly and are typically
// few-valued.
type treeNode struct {
	weakChildren   sync.Map // weak.Pointer[byte] -> *treeNode
	strongChildren sync.Map // comparable value -> *treeNode
	result         atomic.Pointer[any]
}

// typedNilKey keeps nil pointers of different types on distinct paths.
type typedNilKey struct{ t reflect.Type }

// zeroSizeKey stands in for arguments whose referenced allocation is
// zero-sized. Such an address is the runtime's zero-size base, which cannot
// be tracked weakly and carries no identity of its own.
type zeroSizeKey struct {
	t   reflect.Type
	len int
	cap int
}

// sliceLenKey is the strong sub-level under a slice's backing pointer.
// Length is part of slice identity: overlapping views of one array must not
// share a cache path.
type sliceLenKey struct{ n int }

// WeakTreeFn is a Func memoized in an identity-keyed tree. Lookups and the
// GC-driven entry reclamation are safe for concurrent use; the wrapped
// function itself may still run more than once for the same path under
// contention.
type WeakTreeFn struct {
	fn   Func
	root atomic.Pointer[treeNode]
}

// NewWeakTree wraps fn with an identity-keyed weak cache tree. See WeakTree.
func NewWeakTree(fn Func) *WeakTreeFn {
	m := &WeakTreeFn{fn: fn}
	m.root.Store(&treeNode{})
	return m
}

// Call walks the tree one argument at a time and replays the result stored
// at the end of the path. A miss costs exactly one extra invocation of the
// wrapped function; there is no error condition intrinsic to lookup.
func (m *WeakTreeFn) Call(args ...any) any {
	node := m.root.Load()
	for _, arg := range args {
		child, ok := childFor(node, arg)
		if !ok {
			// The argument has no stable identity; skip caching.
			return m.fn(args...)
		}
		node = child
	}
	if res := node.result.Load(); res != nil {
		return *res
	}
	result := m.fn(args...)
	node.result.Store(&result)
	return result
}

// ClearCache resets the root to empty. Subtrees still referenced by pending
// cleanups are dropped wholesale.
func (m *WeakTreeFn) ClearCache() {
	m.root.Store(&treeNode{})
}

func childFor(n *treeNode, arg any) (*treeNode, bool) {
	if arg == nil {
		return strongChild(n, nil), true
	}
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return strongChild(n, typedNilKey{t: rv.Type()}), true
		}
		if rv.Cap() == 0 || rv.Type().Elem().Size() == 0 {
			return strongChild(n, zeroSizeKey{t: rv.Type(), len: rv.Len(), cap: rv.Cap()}), true
		}
		return strongChild(weakChild(n, rv), sliceLenKey{n: rv.Len()}), true
	case reflect.Pointer:
		if rv.IsNil() {
			return strongChild(n, typedNilKey{t: rv.Type()}), true
		}
		if rv.Type().Elem().Size() == 0 {
			// Pointers to zero-size variables are comparable as-is.
			return strongChild(n, arg), true
		}
		return weakChild(n, rv), true
	case reflect.Map, reflect.Chan:
		if rv.IsNil() {
			return strongChild(n, typedNilKey{t: rv.Type()}), true
		}
		return weakChild(n, rv), true
	default:
		if rv.Type().Comparable() {
			return strongChild(n, arg), true
		}
		return nil, false
	}
}

func strongChild(n *treeNode, key any) *treeNode {
	if v, ok := n.strongChildren.Load(key); ok {
		return v.(*treeNode)
	}
	child, _ := n.strongChildren.LoadOrStore(key, &treeNode{})
	return child.(*treeNode)
}

func weakChild(n *treeNode, rv reflect.Value) *treeNode {
	ref := (*byte)(rv.UnsafePointer())
	wk := weak.Make(ref)
	if v, ok := n.weakChildren.Load(wk); ok {
		return v.(*treeNode)
	}
	child, loaded := n.weakChildren.LoadOrStore(wk, &treeNode{})
	if !loaded {
		// Drop the subtree once the argument itself is collected.
		runtime.AddCleanup(ref, func(k weak.Pointer[byte]) {
			n.weakChildren.Delete(k)
		}, wk)
	}
	return child.(*treeNode)
}
