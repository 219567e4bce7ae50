package structs

import (
	. "pathwerk/util"
)

//*******************************************
// shortcut store
//*******************************************

const (
	SHC_EDGE     byte = 0
	SHC_SHORTCUT byte = 2
)

// Stores shortcuts together with the two child refs each shortcut
// replaces.
//
// Child refs are (id, type) tuples, ordered from the via node outwards:
// edge_refs[.][0] leads from the via node to the target, edge_refs[.][1]
// from the source to the via node.
type ShortcutStore struct {
	shortcuts     List[Shortcut]
	edge_refs     List[[2]Tuple[int32, byte]]
	has_edge_refs bool
}

func NewShortcutStore(cap int, store_edge_refs bool) ShortcutStore {
	return ShortcutStore{
		shortcuts:     NewList[Shortcut](cap),
		edge_refs:     NewList[[2]Tuple[int32, byte]](cap),
		has_edge_refs: store_edge_refs,
	}
}

func (self *ShortcutStore) ShortcutCount() int {
	return self.shortcuts.Length()
}

func (self *ShortcutStore) GetShortcut(shc_id int32) Shortcut {
	return self.shortcuts[shc_id]
}

func (self *ShortcutStore) AddCHShortcut(shc Shortcut, edges [2]Tuple[int32, byte]) int32 {
	shc_id := int32(self.shortcuts.Length())
	self.shortcuts.Add(shc)
	if self.has_edge_refs {
		self.edge_refs.Add(edges)
	}
	return shc_id
}

// Unpacks the shortcut into the base edges it represents and calls the
// callback for every edge in path order.
//
// If reverse is true edges are traversed from the shortcut target to the
// source.
func (self *ShortcutStore) GetEdgesFromShortcut(shc_id int32, reverse bool, callback func(int32)) {
	if !self.has_edge_refs {
		panic("shortcut store does not carry edge refs")
	}
	stack := NewList[Tuple[int32, byte]](10)
	stack.Add(MakeTuple(shc_id, SHC_SHORTCUT))
	for stack.Length() > 0 {
		item := stack[stack.Length()-1]
		stack = stack[:stack.Length()-1]
		if item.B == SHC_EDGE {
			callback(item.A)
			continue
		}
		refs := self.edge_refs[item.A]
		// refs[1] precedes refs[0] on the path, push in path order so
		// the stack pops them reversed
		if reverse {
			stack.Add(MakeTuple(refs[1].A, _ChildType(refs[1].B)))
			stack.Add(MakeTuple(refs[0].A, _ChildType(refs[0].B)))
		} else {
			stack.Add(MakeTuple(refs[0].A, _ChildType(refs[0].B)))
			stack.Add(MakeTuple(refs[1].A, _ChildType(refs[1].B)))
		}
	}
}

func _ChildType(typ byte) byte {
	if typ == 2 || typ == 3 {
		return SHC_SHORTCUT
	}
	return SHC_EDGE
}

//*******************************************
// load and store
//*******************************************

func StoreShortcuts(store ShortcutStore, file string) {
	writer := NewBufferWriter()

	Write(writer, int32(store.shortcuts.Length()))
	Write(writer, store.has_edge_refs)
	for _, shc := range store.shortcuts {
		Write(writer, shc.From)
		Write(writer, shc.To)
		Write(writer, shc.Weight)
		Write(writer, shc.Payload)
	}
	if store.has_edge_refs {
		for _, refs := range store.edge_refs {
			Write(writer, refs[0].A)
			Write(writer, refs[0].B)
			Write(writer, refs[1].A)
			Write(writer, refs[1].B)
		}
	}

	WriteBytesToFile(writer.Bytes(), file)
}

func LoadShortcuts(file string) ShortcutStore {
	reader := NewBufferReader(ReadBytesFromFile(file))

	count := Read[int32](reader)
	has_edge_refs := Read[bool](reader)
	shortcuts := NewList[Shortcut](int(count))
	for i := 0; i < int(count); i++ {
		shc := Shortcut{
			From:   Read[int32](reader),
			To:     Read[int32](reader),
			Weight: Read[float64](reader),
		}
		shc.Payload = Read[[8]byte](reader)
		shortcuts.Add(shc)
	}
	edge_refs := NewList[[2]Tuple[int32, byte]](int(count))
	if has_edge_refs {
		for i := 0; i < int(count); i++ {
			var refs [2]Tuple[int32, byte]
			refs[0] = MakeTuple(Read[int32](reader), Read[byte](reader))
			refs[1] = MakeTuple(Read[int32](reader), Read[byte](reader))
			edge_refs.Add(refs)
		}
	}

	return ShortcutStore{
		shortcuts:     shortcuts,
		edge_refs:     edge_refs,
		has_edge_refs: has_edge_refs,
	}
}
