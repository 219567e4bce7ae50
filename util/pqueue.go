package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQEntry[T any, P constraints.Ordered] struct {
	item     T
	priority P
}

// Binary min-heap keyed by priority.
//
// Entries are not updatable, decrease-key is done by enqueueing again and
// discarding stale entries at dequeue time.
type PriorityQueue[T any, P constraints.Ordered] struct {
	entries *List[_PQEntry[T, P]]
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	entries := NewList[_PQEntry[T, P]](cap)
	return PriorityQueue[T, P]{
		entries: &entries,
	}
}

func (self PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.entries.Add(_PQEntry[T, P]{item: item, priority: priority})
	entries := *self.entries
	index := entries.Length() - 1
	for index > 0 {
		parent := (index - 1) / 2
		if entries[parent].priority <= entries[index].priority {
			break
		}
		entries[parent], entries[index] = entries[index], entries[parent]
		index = parent
	}
}

func (self PriorityQueue[T, P]) Dequeue() (T, bool) {
	entries := *self.entries
	if entries.Length() == 0 {
		var t T
		return t, false
	}
	min := entries[0]
	last := entries.Length() - 1
	entries[0] = entries[last]
	*self.entries = entries[:last]
	self._SiftDown(0)
	return min.item, true
}

func (self PriorityQueue[T, P]) PeekPriority() (P, bool) {
	entries := *self.entries
	if entries.Length() == 0 {
		var p P
		return p, false
	}
	return entries[0].priority, true
}

func (self PriorityQueue[T, P]) Len() int {
	return self.entries.Length()
}

func (self PriorityQueue[T, P]) Clear() {
	self.entries.Clear()
}

func (self PriorityQueue[T, P]) _SiftDown(index int) {
	entries := *self.entries
	length := entries.Length()
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index
		if left < length && entries[left].priority < entries[smallest].priority {
			smallest = left
		}
		if right < length && entries[right].priority < entries[smallest].priority {
			smallest = right
		}
		if smallest == index {
			break
		}
		entries[smallest], entries[index] = entries[index], entries[smallest]
		index = smallest
	}
}
