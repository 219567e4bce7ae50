package util

import (
	"golang.org/x/exp/constraints"
)

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Abs[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// Reverses the list in place.
func Reverse[T any](list List[T]) {
	for i, j := 0, list.Length()-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

// Returns the most common value in the array.
func GetMostCommon[T comparable](arr Array[T]) T {
	counts := NewDict[T, int](10)
	for _, value := range arr {
		if counts.ContainsKey(value) {
			counts[value] += 1
		} else {
			counts[value] = 1
		}
	}
	var most T
	max_count := -1
	for value, count := range counts {
		if count > max_count {
			max_count = count
			most = value
		}
	}
	return most
}
