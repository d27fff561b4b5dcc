package scene

import (
	"aimtrainer/internal/geom"
	"testing"
)

func TestHandle_AddRemove(t *testing.T) {
	h := NewHandle()
	h.Add(Object{ID: 1, Pos: geom.Vec3{X: 1, Y: 2, Z: -3}, Radius: 0.5})

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}

	h.Remove(1)
	if h.Len() != 0 {
		t.Errorf("Len after Remove = %d, want 0", h.Len())
	}
}

func TestHandle_RemoveAbsent(t *testing.T) {
	h := NewHandle()
	// Should not panic
	h.Remove(999)
}

func TestHandle_Objects(t *testing.T) {
	h := NewHandle()
	h.Add(Object{ID: 1})
	h.Add(Object{ID: 2})

	list := h.Objects()
	if len(list) != 2 {
		t.Errorf("Objects() returned %d, want 2", len(list))
	}
}

func TestHandle_Clear(t *testing.T) {
	h := NewHandle()
	h.Add(Object{ID: 1})
	h.Add(Object{ID: 2})

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", h.Len())
	}
}
