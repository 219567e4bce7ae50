package structs

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "pathwerk/util"
)

func TestAdjacency(t *testing.T) {
	dyn := NewAdjacencyList(4)
	// 0 -> 1, 1 -> 2, 1 -> 3
	dyn.AddEdgeEntries(0, 1, 0, 0)
	dyn.AddEdgeEntries(1, 2, 1, 0)
	dyn.AddEdgeEntries(1, 3, 2, 0)

	topology := AdjacencyListToArray(&dyn)
	accessor := topology.GetAccessor()

	accessor.SetBaseNode(1, true)
	fwd := NewList[int32](2)
	for accessor.Next() {
		fwd.Add(accessor.GetEdgeID())
	}
	require.ElementsMatch(t, []int32{1, 2}, []int32(fwd))

	accessor.SetBaseNode(1, false)
	require.True(t, accessor.Next())
	require.Equal(t, int32(0), accessor.GetEdgeID())
	require.Equal(t, int32(0), accessor.GetOtherID())
	require.False(t, accessor.Next())

	// node without edges
	accessor.SetBaseNode(3, true)
	require.False(t, accessor.Next())

	require.Equal(t, int16(2), topology.GetDegree(1, true))
	require.Equal(t, int16(0), topology.GetDegree(3, true))
}

func TestShortcutStore(t *testing.T) {
	store := NewShortcutStore(10, true)

	// shortcut 0 replaces edges 0 and 1, shortcut 1 replaces shortcut 0
	// and edge 2
	id := store.AddCHShortcut(NewShortcut(0, 2, 4), [2]Tuple[int32, byte]{
		MakeTuple(int32(1), byte(0)),
		MakeTuple(int32(0), byte(0)),
	})
	require.Equal(t, int32(0), id)
	id = store.AddCHShortcut(NewShortcut(0, 3, 7), [2]Tuple[int32, byte]{
		MakeTuple(int32(2), byte(0)),
		MakeTuple(int32(0), byte(2)),
	})
	require.Equal(t, int32(1), id)

	edges := NewList[int32](3)
	store.GetEdgesFromShortcut(1, false, func(edge int32) {
		edges.Add(edge)
	})
	require.Equal(t, []int32{0, 1, 2}, []int32(edges))

	edges.Clear()
	store.GetEdgesFromShortcut(1, true, func(edge int32) {
		edges.Add(edge)
	})
	require.Equal(t, []int32{2, 1, 0}, []int32(edges))
}

func TestShortcutPayload(t *testing.T) {
	shc := NewShortcut(0, 1, 2)
	Shortcut_set_payload(&shc, int32(17), 0)
	Shortcut_set_payload(&shc, int32(42), 4)
	require.Equal(t, int32(17), Shortcut_get_payload[int32](&shc, 0))
	require.Equal(t, int32(42), Shortcut_get_payload[int32](&shc, 4))
}
