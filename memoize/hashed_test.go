package memoize_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/on-the-ground/select_ive_go/memoize"
)

func TestHashed_MatchesStructurallyEqualArguments(t *testing.T) {
	count := 0
	m := memoize.NewHashed(func(args ...any) any {
		count++
		total := 0
		for _, v := range args[0].([]int) {
			total += v
		}
		return total
	})

	assert.Equal(t, 6, m.Call([]int{1, 2, 3}))
	assert.Equal(t, 6, m.Call([]int{1, 2, 3})) // fresh slice, same key
	assert.Equal(t, 1, count)

	assert.Equal(t, 7, m.Call([]int{1, 2, 4}))
	assert.Equal(t, 2, count)
}

func TestHashed_Unbounded(t *testing.T) {
	count := 0
	m := memoize.NewHashed(func(args ...any) any {
		count++
		return args[0]
	})

	for i := 0; i < 100; i++ {
		m.Call(i)
	}
	assert.Equal(t, 100, count)

	for i := 0; i < 100; i++ {
		m.Call(i)
	}
	assert.Equal(t, 100, count)
}

func TestHashed_ClearCache(t *testing.T) {
	count := 0
	m := memoize.NewHashed(func(args ...any) any {
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

type constantSerializer struct{}

func (constantSerializer) SerializeKey(args ...any) string {
	return fmt.Sprintf("%d", len(args))
}

func TestHashed_CustomSerializer(t *testing.T) {
	count := 0
	m := memoize.NewHashed(
		func(args ...any) any {
			count++
			return args[0]
		},
		memoize.WithKeySerializer(constantSerializer{}),
	)

	// the serializer only looks at arity, so these collide on purpose
	assert.Equal(t, 1, m.Call(1))
	assert.Equal(t, 1, m.Call(2))
	assert.Equal(t, 1, count)
}
