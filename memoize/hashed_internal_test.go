package memoize

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Colliding digests cannot be produced through the public surface, so this
// test seeds a bucket with a foreign key under the digest the next call will
// compute.
func TestHashed_CollidingDigestsChain(t *testing.T) {
	count := 0
	m := NewHashed(func(args ...any) any {
		count++
		return args[0]
	})

	digest := xxhash.Sum64String(m.serializer.SerializeKey(7))
	m.table.Load().Store(digest, []hashedEntry{{key: "imposter", result: "old"}})

	// key mismatch inside the bucket is a miss, never a replay
	assert.Equal(t, 7, m.Call(7))
	assert.Equal(t, 1, count)

	v, ok := m.table.Load().Load(digest)
	require.True(t, ok)
	bucket := v.([]hashedEntry)
	require.Len(t, bucket, 2)
	assert.Equal(t, "old", bucket[0].result)
	assert.Equal(t, 7, bucket[1].result)

	// both entries survive and replay independently
	assert.Equal(t, 7, m.Call(7))
	assert.Equal(t, 1, count)
	v, _ = m.table.Load().Load(digest)
	assert.Len(t, v.([]hashedEntry), 2)
}
