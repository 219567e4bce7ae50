package util

//*******************************************
// search flags
//*******************************************

type _FlagEntry[T any] struct {
	value   T
	version int32
}

type _FlagState[T any] struct {
	entries  Array[_FlagEntry[T]]
	_default T
	version  int32
}

// Dense per-id search state with O(1) reset.
//
// Entries are lazily re-initialized to the default value after a Reset,
// tracked by a version counter, so clearing between runs does not touch
// the whole array.
type Flags[T any] struct {
	state *_FlagState[T]
}

func NewFlags[T any](size int32, _default T) Flags[T] {
	return Flags[T]{
		state: &_FlagState[T]{
			entries:  NewArray[_FlagEntry[T]](int(size)),
			_default: _default,
			version:  1,
		},
	}
}

func (self Flags[T]) Get(id int32) *T {
	entry := &self.state.entries[id]
	if entry.version != self.state.version {
		entry.value = self.state._default
		entry.version = self.state.version
	}
	return &entry.value
}

// Returns true if the entry has been touched since the last Reset.
func (self Flags[T]) IsSet(id int32) bool {
	return self.state.entries[id].version == self.state.version
}

func (self Flags[T]) Length() int {
	return self.state.entries.Length()
}

func (self Flags[T]) Reset() {
	self.state.version += 1
}
