package memoize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/select_ive_go/memoize"
)

func TestCached_MemoizesBySerializedArguments(t *testing.T) {
	memoizer, err := memoize.Cached(memoize.DefaultCacheConfig())
	require.NoError(t, err)

	count := 0
	m := memoizer.Memoize(func(args ...any) any {
		count++
		return args[0].(int) * 2
	})

	assert.Equal(t, 4, m.Call(2))
	assert.Equal(t, 4, m.Call(2))
	assert.Equal(t, 1, count)

	assert.Equal(t, 6, m.Call(3))
	assert.Equal(t, 2, count)
}

func TestCached_ClearCache(t *testing.T) {
	memoizer, err := memoize.Cached(memoize.DefaultCacheConfig())
	require.NoError(t, err)

	count := 0
	m := memoizer.Memoize(func(args ...any) any {
		count++
		return args[0]
	})

	m.Call("k")
	m.Call("k")
	assert.Equal(t, 1, count)

	m.ClearCache()
	m.Call("k")
	assert.Equal(t, 2, count)
}

func TestCacheConfig_Validate(t *testing.T) {
	valid := memoize.DefaultCacheConfig()
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*memoize.CacheConfig){
		"zero capacity":       func(c *memoize.CacheConfig) { c.Capacity = 0 },
		"zero shards":         func(c *memoize.CacheConfig) { c.NumShards = 0 },
		"zero ttl":            func(c *memoize.CacheConfig) { c.TTL = 0 },
		"negative ttl":        func(c *memoize.CacheConfig) { c.TTL = -time.Second },
		"eviction too low":    func(c *memoize.CacheConfig) { c.EvictionPercentage = 0 },
		"eviction over limit": func(c *memoize.CacheConfig) { c.EvictionPercentage = 101 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := memoize.DefaultCacheConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), memoize.ErrInvalidConfig)

			_, err := memoize.Cached(cfg)
			assert.ErrorIs(t, err, memoize.ErrInvalidConfig)
		})
	}
}
