package comps

//*******************************************
// graph io
//*******************************************

type IStoreable interface {
	_Store(path string)
}

func Store(comp IStoreable, path string) {
	comp._Store(path)
}

type ILoadable[T any] interface {
	_New() T
	_Load(path string)
}

func Load[T ILoadable[T]](path string) T {
	var comp T
	comp = comp._New()
	comp._Load(path)
	return comp
}
