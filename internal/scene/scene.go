// Package scene owns the set of renderable objects for one session. The
// handle is an opaque capability: callers add and remove objects, the
// rendering backend (the browser client) is told about changes elsewhere.
package scene

import (
	"aimtrainer/internal/geom"
	"sync"
)

// Object is one renderable in the scene.
type Object struct {
	ID     int
	Pos    geom.Vec3
	Radius float64
	Color  string
}

type Handle struct {
	mu      sync.Mutex
	objects map[int]Object
}

func NewHandle() *Handle {
	return &Handle{
		objects: make(map[int]Object),
	}
}

func (h *Handle) Add(obj Object) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[obj.ID] = obj
}

// Remove is a no-op when the object is absent.
func (h *Handle) Remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.objects, id)
}

func (h *Handle) Objects() []Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := make([]Object, 0, len(h.objects))
	for _, obj := range h.objects {
		list = append(list, obj)
	}
	return list
}

func (h *Handle) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

func (h *Handle) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects = make(map[int]Object)
}
