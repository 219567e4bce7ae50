package comps

import (
	"pathwerk/structs"
	. "pathwerk/util"
)

//*******************************************
// ch-data interface
//*******************************************

type ICHData interface {
	GetNodeLevel(node int32) int16
}

//*******************************************
// ch-data
//*******************************************

func NewCH(shortcuts structs.ShortcutStore, topology structs.AdjacencyArray, node_levels Array[int16], edge_based bool) *CH {
	return &CH{
		shortcuts:   shortcuts,
		topology:    topology,
		node_levels: node_levels,
		edge_based:  edge_based,
	}
}

// Contraction hierarchy built on top of a graph base.
//
// Shortcut topology only contains the shortcut edges, base edges are
// served by the graph base itself.
type CH struct {
	shortcuts   structs.ShortcutStore
	topology    structs.AdjacencyArray
	node_levels Array[int16]
	edge_based  bool
}

func (self *CH) GetNodeLevel(node int32) int16 {
	return self.node_levels[node]
}
func (self *CH) NodeCount() int {
	return self.node_levels.Length()
}
func (self *CH) IsEdgeBased() bool {
	return self.edge_based
}
func (self *CH) ShortcutCount() int {
	return self.shortcuts.ShortcutCount()
}
func (self *CH) GetShortcut(shc_id int32) structs.Shortcut {
	return self.shortcuts.GetShortcut(shc_id)
}
func (self *CH) GetEdgesFromShortcut(shc_id int32, reverse bool, callback func(int32)) {
	self.shortcuts.GetEdgesFromShortcut(shc_id, reverse, callback)
}
func (self *CH) GetShortcutAccessor() structs.IAdjAccessor {
	acc := self.topology.GetAccessor()
	return &acc
}

// First base edge traversed by the shortcut, used for turn costs at the
// shortcut source.
func (self *CH) GetEntryEdge(shc_id int32) int32 {
	shc := self.shortcuts.GetShortcut(shc_id)
	return structs.Shortcut_get_payload[int32](&shc, 0)
}

// Last base edge traversed by the shortcut, used for turn costs at the
// shortcut target.
func (self *CH) GetExitEdge(shc_id int32) int32 {
	shc := self.shortcuts.GetShortcut(shc_id)
	return structs.Shortcut_get_payload[int32](&shc, 4)
}

func (self *CH) _New() *CH {
	return &CH{}
}
func (self *CH) _Load(path string) {
	ch_topology := structs.LoadAdjacency(path+"-ch_graph", false)
	ch_shortcuts := structs.LoadShortcuts(path + "-shortcut")
	node_levels := ReadArrayFromFile[int16](path + "-level")
	edge_based := ReadFromFile[bool](path + "-chmode")

	*self = CH{
		shortcuts:   ch_shortcuts,
		topology:    ch_topology,
		node_levels: node_levels,
		edge_based:  edge_based,
	}
}
func (self *CH) _Store(path string) {
	structs.StoreShortcuts(self.shortcuts, path+"-shortcut")
	structs.StoreAdjacency(&self.topology, false, path+"-ch_graph")
	WriteArrayToFile[int16](self.node_levels, path+"-level")
	WriteToFile(self.edge_based, path+"-chmode")
}
