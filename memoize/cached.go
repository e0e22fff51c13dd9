package memoize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"
)

// ErrInvalidConfig reports a rejected CacheConfig field.
var ErrInvalidConfig = errors.New("memoize: invalid cache config")

// CacheConfig sizes the sturdyc client behind the Cached strategy.
type CacheConfig struct {
	// Capacity is the maximum number of entries the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent
	// access. Must be greater than 0.
	NumShards int

	// TTL is how long a cached entry stays valid. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is the share of entries dropped when the cache
	// reaches capacity. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultCacheConfig returns a CacheConfig with sensible defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Capacity:           10_000,
		NumShards:          64,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are usable.
func (c CacheConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: Capacity must be greater than 0, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.NumShards <= 0 {
		return fmt.Errorf("%w: NumShards must be greater than 0, got %d", ErrInvalidConfig, c.NumShards)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("%w: TTL must be greater than 0, got %v", ErrInvalidConfig, c.TTL)
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return fmt.Errorf("%w: EvictionPercentage must be between 1 and 100, got %d", ErrInvalidConfig, c.EvictionPercentage)
	}
	return nil
}

// Cached returns a strategy backed by a sturdyc client sized by cfg. Use it
// for expensive functions whose argument tuples serialize to stable keys and
// for which a capacity and TTL bound matters more than strict identity
// semantics. Each memoized function gets its own client.
func Cached(cfg CacheConfig) (Memoizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cachedMemoizer{cfg: cfg}, nil
}

type cachedMemoizer struct{ cfg CacheConfig }

func (m cachedMemoizer) Memoize(fn Func, opts ...Option) Memoized {
	cfg := newConfig(opts)
	return &CachedFn{
		fn:         fn,
		serializer: cfg.serializer,
		client: sturdyc.New[any](
			m.cfg.Capacity,
			m.cfg.NumShards,
			m.cfg.TTL,
			m.cfg.EvictionPercentage,
		),
	}
}

// CachedFn is a Func memoized in a shared sturdyc cache keyed by serialized
// arguments.
type CachedFn struct {
	fn         Func
	serializer KeySerializer
	client     *sturdyc.Client[any]
}

// Call fetches the result for the serialized argument tuple, invoking the
// wrapped function only on a miss or after expiry.
func (m *CachedFn) Call(args ...any) any {
	key := m.serializer.SerializeKey(args...)
	result, err := m.client.GetOrFetch(context.Background(), key, func(context.Context) (any, error) {
		return m.fn(args...), nil
	})
	if err != nil {
		// Our fetch never fails; if the client refuses anyway, fall back
		// to a direct call.
		return m.fn(args...)
	}
	return result
}

// ClearCache deletes every key currently held by the client.
func (m *CachedFn) ClearCache() {
	for _, key := range m.client.ScanKeys() {
		m.client.Delete(key)
	}
}
