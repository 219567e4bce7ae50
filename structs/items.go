package structs

import (
	"unsafe"

	"pathwerk/geo"
)

//*******************************************
// graph structs
//*******************************************

// Directed edge from NodeA to NodeB.
type Edge struct {
	NodeA  int32
	NodeB  int32
	Length float32
}

type Node struct {
	Loc geo.Coord
}

//*******************************************
// shortcut struct
//*******************************************

type Shortcut struct {
	From    int32
	To      int32
	Weight  float64
	Payload [8]byte
}

func NewShortcut(from, to int32, weight float64) Shortcut {
	return Shortcut{
		From:   from,
		To:     to,
		Weight: weight,
	}
}

// Payload size is 8 bytes.
//
// Be carefull, this method is unsafe.
func Shortcut_set_payload[T int32 | int16 | int8 | uint32 | uint16 | uint8 | bool](edge *Shortcut, value T, pos int) {
	*(*T)(unsafe.Pointer(&edge.Payload[pos])) = value
}

// Payload size is 8 bytes.
//
// Be carefull, this method is unsafe.
func Shortcut_get_payload[T int32 | int16 | int8 | uint32 | uint16 | uint8 | bool](edge *Shortcut, pos int) T {
	return *(*T)(unsafe.Pointer(&edge.Payload[pos]))
}
