package nametable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableGetSetDelete(t *testing.T) {
	tb := New[int]()
	_, ok := tb.Get([]byte("a"))
	require.False(t, ok)

	tb.Set([]byte("a"), 1)
	tb.Set([]byte("b"), 2)
	require.Equal(t, 2, tb.Len())

	v, ok := tb.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, 1, v)

	tb.Set([]byte("a"), 10)
	v, ok = tb.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, 10, v)
	require.Equal(t, 2, tb.Len())

	require.True(t, tb.Delete([]byte("a")))
	require.False(t, tb.Delete([]byte("a")))
	require.Equal(t, 1, tb.Len())
}

func TestTableKeyIsolation(t *testing.T) {
	tb := New[string]()
	key := []byte("mutable")
	tb.Set(key, "value")
	key[0] = 'X'

	v, ok := tb.Get([]byte("mutable"))
	require.True(t, ok)
	require.Equal(t, "value", v)
}

func TestTableGrowthPreservesEntries(t *testing.T) {
	tb := New[int]()
	const n = 500
	for i := 0; i < n; i++ {
		tb.Set([]byte(fmt.Sprintf("key-%d", i)), i)
	}
	require.Equal(t, n, tb.Len())
	for i := 0; i < n; i++ {
		v, ok := tb.Get([]byte(fmt.Sprintf("key-%d", i)))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestTableRange(t *testing.T) {
	tb := New[int]()
	tb.Set([]byte("a"), 1)
	tb.Set([]byte("b"), 2)
	tb.Set([]byte("c"), 3)

	seen := map[string]int{}
	tb.Range(func(key []byte, v int) bool {
		seen[string(key)] = v
		return true
	})
	require.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, seen)
}

func TestTableRangeEarlyStop(t *testing.T) {
	tb := New[int]()
	tb.Set([]byte("a"), 1)
	tb.Set([]byte("b"), 2)

	count := 0
	tb.Range(func(key []byte, v int) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}

func TestTableDeleteThenReinsert(t *testing.T) {
	tb := New[int]()
	tb.Set([]byte("a"), 1)
	tb.Delete([]byte("a"))
	tb.Set([]byte("a"), 2)

	v, ok := tb.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, tb.Len())
}
