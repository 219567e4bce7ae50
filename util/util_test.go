package util

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrdering(t *testing.T) {
	heap := NewPriorityQueue[int32, float64](10)

	priorities := make([]float64, 100)
	for i := 0; i < 100; i++ {
		priorities[i] = rand.Float64() * 1000
		heap.Enqueue(int32(i), priorities[i])
	}

	sorted := append([]float64{}, priorities...)
	sort.Float64s(sorted)

	for i := 0; i < 100; i++ {
		item, ok := heap.Dequeue()
		require.True(t, ok)
		require.InDelta(t, sorted[i], priorities[item], 1e-9)
	}
	_, ok := heap.Dequeue()
	require.False(t, ok)
}

func TestPriorityQueueDuplicates(t *testing.T) {
	heap := NewPriorityQueue[int32, int32](4)
	heap.Enqueue(1, 10)
	heap.Enqueue(1, 5)
	heap.Enqueue(2, 7)

	item, ok := heap.Dequeue()
	require.True(t, ok)
	require.Equal(t, int32(1), item)
	item, ok = heap.Dequeue()
	require.True(t, ok)
	require.Equal(t, int32(2), item)
	item, ok = heap.Dequeue()
	require.True(t, ok)
	require.Equal(t, int32(1), item)

	heap.Clear()
	require.Equal(t, 0, heap.Len())
}

func TestFlagsReset(t *testing.T) {
	type flag struct {
		dist    int32
		visited bool
	}
	flags := NewFlags[flag](10, flag{dist: 1000000})

	f := flags.Get(3)
	require.Equal(t, int32(1000000), f.dist)
	f.dist = 42
	f.visited = true
	require.Equal(t, int32(42), flags.Get(3).dist)
	require.True(t, flags.IsSet(3))
	require.False(t, flags.IsSet(4))

	flags.Reset()
	require.False(t, flags.IsSet(3))
	require.Equal(t, int32(1000000), flags.Get(3).dist)
	require.False(t, flags.Get(3).visited)
}

func TestOptional(t *testing.T) {
	opt := None[int32]()
	require.False(t, opt.HasValue())
	opt = Some(int32(7))
	require.True(t, opt.HasValue())
	require.Equal(t, int32(7), opt.Value)
}

func TestBufferRoundtrip(t *testing.T) {
	writer := NewBufferWriter()
	Write(writer, int32(17))
	Write(writer, float64(3.5))
	WriteArray(writer, Array[int16]{1, 2, 3})

	reader := NewBufferReader(writer.Bytes())
	require.Equal(t, int32(17), Read[int32](reader))
	require.Equal(t, float64(3.5), Read[float64](reader))
	arr := ReadArray[int16](reader)
	require.Equal(t, Array[int16]{1, 2, 3}, arr)
}
