package util

import (
	"encoding/json"
)

//*******************************************
// array and list
//*******************************************

// Fixed-size container, access via indexing.
type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Length() int {
	return len(self)
}
func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}

// Growable container, access via indexing.
type List[T any] []T

func NewList[T any](cap int) List[T] {
	return make([]T, 0, cap)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self *List[T]) Clear() {
	*self = (*self)[:0]
}
func (self List[T]) Length() int {
	return len(self)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}

func Contains[T comparable](list List[T], value T) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Returns a new array with every item moved to the index mapping[i].
func Reorder[T any](arr Array[T], mapping Array[int32]) Array[T] {
	new_arr := NewArray[T](arr.Length())
	for i, id := range mapping {
		new_arr[id] = arr[i]
	}
	return new_arr
}

//*******************************************
// dictionary
//*******************************************

type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](cap int) Dict[K, V] {
	return make(map[K]V, cap)
}

func (self Dict[K, V]) Set(key K, value V) {
	self[key] = value
}
func (self Dict[K, V]) Get(key K) V {
	return self[key]
}
func (self Dict[K, V]) ContainsKey(key K) bool {
	_, ok := self[key]
	return ok
}
func (self Dict[K, V]) Delete(key K) {
	delete(self, key)
}

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value     T
	has_value bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{
		Value:     value,
		has_value: true,
	}
}
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has_value
}

//*******************************************
// tuples
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

//*******************************************
// matrix
//*******************************************

// Dense row-major matrix, serialized as nested rows.
type Matrix[T any] struct {
	rows int
	cols int
	data Array[T]
}

func NewMatrix[T any](rows, cols int) Matrix[T] {
	return Matrix[T]{
		rows: rows,
		cols: cols,
		data: NewArray[T](rows * cols),
	}
}

func (self Matrix[T]) Rows() int {
	return self.rows
}
func (self Matrix[T]) Cols() int {
	return self.cols
}
func (self Matrix[T]) Get(row, col int) T {
	return self.data[row*self.cols+col]
}
func (self Matrix[T]) Set(row, col int, value T) {
	self.data[row*self.cols+col] = value
}

func (self Matrix[T]) MarshalJSON() ([]byte, error) {
	rows := make([][]T, self.rows)
	for i := 0; i < self.rows; i++ {
		rows[i] = self.data[i*self.cols : (i+1)*self.cols]
	}
	return json.Marshal(rows)
}
